// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-visible texts shown by the trace-backup
// client.
//
// Notice* constants are the titles and bodies of non-blocking notices the
// backup service hands to the notice presenter. Keeping them in one place
// ensures consistent wording across every caller.
package app

const (
	// NoticeStoreRecreatedTitle is shown when the local backup store could
	// not be read and was recreated empty.
	NoticeStoreRecreatedTitle = "Local backup file corrupted"

	// NoticeStoreRecreatedMessage accompanies NoticeStoreRecreatedTitle.
	NoticeStoreRecreatedMessage = "Don't worry, your request was successful and all your data is safe on our servers. Recreating local backup file now..."

	// NoticeBackupFailedTitle is shown when an entry could not be written
	// to the local backup store. The body is the error text.
	NoticeBackupFailedTitle = "Your report has been received by the server, but we couldn't back it up on your device"

	// NoticeListFailedTitle is shown when the full backup history could not
	// be read. The body is the error text.
	NoticeListFailedTitle = "Error going through local backups."

	// NoticeSearchFailedTitle is shown when a windowed lookup of recent
	// backups failed. The body is the error text.
	NoticeSearchFailedTitle = "Couldn't search local backups. Trying server now."

	// NoticeCheckFailedTitle is shown when the "submitted today" check could
	// not be answered.
	NoticeCheckFailedTitle = "Error"

	// NoticeCheckFailedFormat is the body of the failed "submitted today"
	// notice. The verb receives the error text.
	NoticeCheckFailedFormat = "Could not check if you have already submitted a questionnaire today. %s. If the error persists, try signing out and signing back in."
)
