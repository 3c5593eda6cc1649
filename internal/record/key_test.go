package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/kvload/pkg/kvload"
)

func TestFieldKey_Key(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		want    string
		wantErr error
	}{
		{name: "string id", record: Record{"id": "a", "v": int64(1)}, want: "a"},
		{name: "binary id", record: Record{"id": []byte("b")}, want: "b"},
		{name: "signed integer id", record: Record{"id": int64(-42)}, want: "-42"},
		{name: "unsigned integer id", record: Record{"id": uint64(7)}, want: "7"},
		{name: "json integer id", record: Record{"id": json.Number("1001")}, want: "1001"},
		{name: "missing id", record: Record{"v": int64(1)}, wantErr: kvload.ErrMissingKey},
		{name: "empty record", record: Record{}, wantErr: kvload.ErrMissingKey},
		{name: "nil id", record: Record{"id": nil}, wantErr: kvload.ErrInvalidKey},
		{name: "empty string id", record: Record{"id": ""}, wantErr: kvload.ErrInvalidKey},
		{name: "float id", record: Record{"id": 1.5}, wantErr: kvload.ErrInvalidKey},
		{name: "json fractional id", record: Record{"id": json.Number("1.5")}, wantErr: kvload.ErrInvalidKey},
		{name: "map id", record: Record{"id": map[string]interface{}{"x": "y"}}, wantErr: kvload.ErrInvalidKey},
		{name: "bool id", record: Record{"id": true}, wantErr: kvload.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldKey{Field: "id"}.Key(tt.record)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldKey_CustomField(t *testing.T) {
	got, err := FieldKey{Field: "entity_id"}.Key(Record{"entity_id": "Q42", "id": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Q42", got)

	_, err = FieldKey{Field: "entity_id"}.Key(Record{"id": "a"})
	assert.ErrorIs(t, err, kvload.ErrMissingKey)
	assert.Contains(t, err.Error(), `"entity_id"`)
}

func TestEntryKey_Key(t *testing.T) {
	got, err := EntryKey{}.Key(Record{"Q42": map[string]interface{}{"label": "Douglas Adams"}})
	require.NoError(t, err)
	assert.Equal(t, "Q42", got)

	_, err = EntryKey{}.Key(Record{})
	assert.ErrorIs(t, err, kvload.ErrMissingKey)

	_, err = EntryKey{}.Key(Record{"a": int64(1), "b": int64(2)})
	assert.ErrorIs(t, err, kvload.ErrInvalidKey)
}

func TestNewKeyExtractor(t *testing.T) {
	ex, err := NewKeyExtractor(kvload.KeyModeField, "")
	require.NoError(t, err)
	assert.Equal(t, FieldKey{Field: "id"}, ex)

	ex, err = NewKeyExtractor(kvload.KeyModeEntry, "ignored")
	require.NoError(t, err)
	assert.Equal(t, EntryKey{}, ex)

	_, err = NewKeyExtractor("path", "id")
	assert.ErrorIs(t, err, kvload.ErrInvalidConfig)
}
