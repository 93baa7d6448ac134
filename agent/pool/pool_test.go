package pool

import (
	"testing"

	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2/assert"
)

func result(r dto.Result) findy.Channel {
	ch := make(findy.Channel, 1)
	ch <- r
	return ch
}

func TestOpen_ReusesHandle(t *testing.T) {
	r := dto.Result{}
	r.SetHandle(1)
	pool.SetChan(result(r))

	tests := []struct {
		name string
		pool string
		want int
	}{
		{"1st", "pool_name", 1},
		{"same name", "pool_name", 1},
		{"different name", "other_pool", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			h, err := Open(tt.pool)
			assert.NoError(err)
			assert.Equal(h, tt.want)
		})
	}
}

func TestHandle_FailedOpen(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	pool.SetChan(result(dto.Result{Er: dto.Err{Error: "POOL_ERROR", Code: 300}}))
	assert.Equal(Handle(), 0)
}
