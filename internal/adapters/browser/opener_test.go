package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func newRecordingOpener(goos string) (*Opener, *[]startCall) {
	calls := &[]startCall{}
	return &Opener{
		goos: goos,
		start: func(_ context.Context, name string, args ...string) error {
			*calls = append(*calls, startCall{name: name, args: args})
			return nil
		},
	}, calls
}

func TestOpenUsesPlatformHandler(t *testing.T) {
	const link = "https://meet.jit.si/HolaMeeto-abc1234"

	tests := []struct {
		goos string
		want startCall
	}{
		{goos: "linux", want: startCall{name: "xdg-open", args: []string{link}}},
		{goos: "darwin", want: startCall{name: "open", args: []string{link}}},
		{goos: "windows", want: startCall{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", link}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			opener, calls := newRecordingOpener(tt.goos)

			require.NoError(t, opener.Open(context.Background(), link))
			assert.Equal(t, []startCall{tt.want}, *calls)
		})
	}
}

func TestOpenRejectsUnsupportedInput(t *testing.T) {
	opener, calls := newRecordingOpener("plan9")

	err := opener.Open(context.Background(), "https://meet.jit.si/HolaMeeto-abc1234")
	assert.ErrorIs(t, err, ErrUnsupportedOS)

	opener.goos = "linux"
	err = opener.Open(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an http(s) link")

	assert.Empty(t, *calls)
}

func TestOpenHonorsCanceledContext(t *testing.T) {
	opener, calls := newRecordingOpener("linux")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := opener.Open(ctx, "https://meet.jit.si/HolaMeeto-abc1234")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *calls)
}
