package cli

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftblocks/internal/client"
	"shiftblocks/internal/display"
	"shiftblocks/internal/httpapi"
	"shiftblocks/internal/scheduling"
	"shiftblocks/pkg/config"
)

func startServer(t *testing.T) string {
	t.Helper()
	ctrl := scheduling.NewController(scheduling.NewMemoryStore(), scheduling.Options{})
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.Dependencies{
		Cfg:        config.Config{},
		Controller: ctrl,
		Fmt:        display.NewFormatter(nil),
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", server}, args...))
	err := root.Execute()
	return out.String(), err
}

func fieldValue(line, key string) string {
	for _, f := range strings.Fields(line) {
		if v, ok := strings.CutPrefix(f, key+"="); ok {
			return v
		}
	}
	return ""
}

func TestDemo(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "demo")
	require.NoError(t, err, out)
	assert.Contains(t, out, "4 request again     rejected code=DUPLICATE_BOOKING")
	assert.Contains(t, out, "5 second employee   rejected code=BLOCK_FULL")
	assert.Contains(t, out, `status=cancelled label="storniert"`)
	assert.Contains(t, out, "status=open")
}

func TestBlocksAndBookingsCommands(t *testing.T) {
	server := startServer(t)

	out, err := run(t, server, "blocks", "create",
		"--title", "Spät – Objekt B",
		"--starts-at", "2025-03-14T14:55",
		"--ends-at", "2025-03-14T18:55",
		"--capacity", "2",
	)
	require.NoError(t, err, out)
	blockID := fieldValue(out, "id")
	require.NotEmpty(t, blockID)

	out, err = run(t, server, "bookings", "request", blockID, "--name", "Anna", "--email", "anna@x.com")
	require.NoError(t, err, out)
	bookingID := fieldValue(out, "id")
	require.NotEmpty(t, bookingID)

	out, err = run(t, server, "bookings", "approve", bookingID)
	require.NoError(t, err, out)
	assert.Contains(t, out, `label="bestätigt"`)

	out, err = run(t, server, "bookings", "mine", "--email", "ANNA@x.com")
	require.NoError(t, err, out)
	assert.Contains(t, out, bookingID)

	out, err = run(t, server, "blocks", "close", blockID)
	require.NoError(t, err, out)
	assert.Contains(t, out, "status=closed")

	out, err = run(t, server, "blocks", "list", "--open")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, server, "blocks", "list", "--bookings")
	require.NoError(t, err)
	assert.Contains(t, out, "booked=1/2")
	assert.Contains(t, out, "  id="+bookingID)
}

func TestCommandErrorsCarryAPICode(t *testing.T) {
	server := startServer(t)

	_, err := run(t, server, "blocks", "reopen", "bmissing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", client.Code(err))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "Block nicht gefunden.")

	buf.Reset()
	printError(&buf, errors.New("dial tcp: refused"))
	assert.Equal(t, "error: dial tcp: refused\n", buf.String())
}
