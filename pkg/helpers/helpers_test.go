package helpers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	p := ObjectPath("employees", "Me.PNG")
	require.True(t, strings.HasPrefix(p, "employees/"))
	require.True(t, strings.HasSuffix(p, ".png"))
	require.NotEqual(t, p, ObjectPath("employees", "Me.PNG"))
	require.Equal(t, "https://storage.googleapis.com/b/employees/x.png", PublicURL("b", "employees/x.png"))
}

func TestRedisDrainSkipsUndecodable(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()

	type item struct{ N int }
	require.NoError(t, RedisPushJSON(ctx, rdb, "k", item{N: 1}, 0))
	_, err := mr.RPush("k", "not json")
	require.NoError(t, err)
	require.NoError(t, RedisPushJSON(ctx, rdb, "k", item{N: 2}, time.Minute))

	got, err := RedisDrainJSON[item](ctx, rdb, "k")
	require.NoError(t, err)
	require.Equal(t, []item{{N: 1}, {N: 2}}, got)
	require.False(t, mr.Exists("k"))
}
