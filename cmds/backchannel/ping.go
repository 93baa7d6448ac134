package backchannel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/findy-network/findy-backchannel/cmds"
	"github.com/findy-network/findy-backchannel/server"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const pingTimeout = 3 * time.Second

// PingCmd asks version and status from a running backchannel.
type PingCmd struct {
	BaseAddr string
}

func (c PingCmd) Validate() error {
	if c.BaseAddr == "" {
		return errors.New("server url cannot be empty")
	}
	return cmds.ValidateURL("base address", c.BaseAddr, false)
}

func (c PingCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "ping %s", c.BaseAddr)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	version := try.To1(c.get(ctx, "version"))
	status := try.To1(c.get(ctx, "status"))
	cmds.Fprintln(w, "ping ok.",
		"\nversion:", version,
		"\nstatus:", status)

	return nil, nil
}

func (c PingCmd) get(ctx context.Context, cmd string) (s string, err error) {
	defer err2.Handle(&err)

	u := strings.TrimSuffix(c.BaseAddr, "/") + server.CommandPath + "/" + cmd
	request := try.To1(http.NewRequestWithContext(ctx, http.MethodGet, u, nil))
	response := try.To1(http.DefaultClient.Do(request))
	defer response.Body.Close()

	data := try.To1(io.ReadAll(response.Body))
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", cmd, response.Status)
	}
	return string(data), nil
}
