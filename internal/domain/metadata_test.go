package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_JSONKeepsMetadataKind(t *testing.T) {
	txn := Transaction{
		ID:     "txn_1",
		UserID: "u1",
		Type:   TransactionRefund,
		Status: StatusProcessing,
		Metadata: RefundMeta{
			OriginalTransactionID: "txn_0",
			Reason:                "duplicate",
			Original:              TShirtOrderMeta{ListingID: "listing_001", Size: "L", Color: "Black"},
		},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(txn)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"refund"`)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(raw, &decoded))

	refund, ok := decoded.Metadata.(RefundMeta)
	require.True(t, ok, "metadata should decode to RefundMeta, got %T", decoded.Metadata)
	assert.Equal(t, "txn_0", refund.OriginalTransactionID)
	assert.Equal(t, TShirtOrderMeta{ListingID: "listing_001", Size: "L", Color: "Black"}, refund.Original)
	assert.Equal(t, txn.ID, decoded.ID)
	assert.True(t, txn.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDecodeMetadata(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Metadata
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "null", raw: "null", want: nil},
		{
			name: "generic map",
			raw:  `{"kind":"generic","data":{"source":"kiosk"}}`,
			want: GenericMeta{"source": "kiosk"},
		},
		{
			name: "vod purchase",
			raw:  `{"kind":"vod_purchase","data":{"vod_class_id":"vod_001","instructor_id":"instructor_001"}}`,
			want: VODPurchaseMeta{VODClassID: "vod_001", InstructorID: "instructor_001"},
		},
		{name: "unknown kind", raw: `{"kind":"mystery","data":{}}`, wantErr: true},
		{name: "broken json", raw: `{"kind":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMetadata([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeMetadata_Nil(t *testing.T) {
	raw, err := EncodeMetadata(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}
