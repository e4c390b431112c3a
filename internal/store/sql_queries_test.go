// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/trace-backup/models"
)

func Test_buildListBackupEntriesQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, args, err := buildListBackupEntriesQuery(ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, args)

	q := strings.ToLower(query)
	for _, col := range []string{columnID, columnCreatedAt, columnData, columnReport} {
		assert.Contains(t, q, col)
	}
	assert.Contains(t, q, "from backup_entries")
	assert.NotContains(t, q, "where")
	assert.True(t, strings.HasSuffix(q, "order by created_at desc, seq desc"))
}

func Test_buildListBackupEntriesQuery(t *testing.T) {
	since := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    ListFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "since only",
			filter:    ListFilter{Since: since},
			wantWhere: "WHERE created_at >= ?",
			wantArgs:  []any{since.UnixNano()},
		},
		{
			name:      "kind only",
			filter:    ListFilter{Kind: models.ReportKindTest},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "since and kind",
			filter:    ListFilter{Since: since, Kind: models.ReportKindDaily},
			wantWhere: "WHERE created_at >= ?",
			wantArgs:  []any{since.UnixNano()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListBackupEntriesQuery(tt.filter)
			require.NoError(t, err)

			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
				assert.Empty(t, args)
			} else {
				assert.Contains(t, query, tt.wantWhere)
				assert.Equal(t, tt.wantArgs, args)
			}
			// the kind is sealed and never part of the query
			assert.NotContains(t, query, "kind")
			// ordering is never dropped by filters
			assert.Contains(t, query, "ORDER BY created_at DESC, seq DESC")
		})
	}
}
