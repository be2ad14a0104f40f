package processor

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	tests := []struct {
		name     string
		resumers func(calls *atomic.Int32) []Resumer
		wantErr  bool
	}{
		{
			name: "All resumers run",
			resumers: func(calls *atomic.Int32) []Resumer {
				r := ResumerFunc(func(ctx context.Context) (int, error) {
					calls.Add(1)
					return 2, nil
				})
				return []Resumer{r, r, r}
			},
		},
		{
			name: "Error is returned",
			resumers: func(calls *atomic.Int32) []Resumer {
				return []Resumer{
					ResumerFunc(func(ctx context.Context) (int, error) {
						calls.Add(1)
						return 0, nil
					}),
					ResumerFunc(func(ctx context.Context) (int, error) {
						calls.Add(1)
						return 0, assert.AnError
					}),
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			resumers := tt.resumers(&calls)
			err := Recover(context.Background(), resumers...)
			if tt.wantErr {
				assert.ErrorIs(t, err, assert.AnError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int32(len(resumers)), calls.Load())
		})
	}
}
