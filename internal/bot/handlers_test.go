package bot

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// recordingTransport answers every REST call with an empty 200 and keeps
// the request bodies, so handlers can run against a real session without
// touching the network.
type recordingTransport struct {
	mu     sync.Mutex
	bodies []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}
	rt.mu.Lock()
	rt.bodies = append(rt.bodies, body)
	rt.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader("{}")),
		Request:    req,
	}, nil
}

func (rt *recordingTransport) snapshot() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.bodies...)
}

func stubSession(t *testing.T, rt http.RoundTripper) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Client = &http.Client{Transport: rt}
	return s
}

// An interaction with neither Member nor User must get the identity reply,
// not the directory-down one.
func TestHandleVerifyWithoutIdentifiableUser(t *testing.T) {
	rt := &recordingTransport{}
	s := stubSession(t, rt)
	h := NewHandlers(nil, nil, nil, nil, nil, nil)

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: CmdVerify},
		},
	}

	outcome := h.handleVerify(context.Background(), s, i)
	if outcome != "identity_error" {
		t.Fatalf("outcome = %q, want identity_error", outcome)
	}

	bodies := rt.snapshot()
	if len(bodies) != 2 {
		t.Fatalf("expected ack + reply, got %d requests", len(bodies))
	}
	if !strings.Contains(bodies[1], "identify your Discord account") {
		t.Errorf("reply = %s, want the identity message", bodies[1])
	}
	if strings.Contains(bodies[1], "membership directory") {
		t.Errorf("reply misattributes the failure to the directory: %s", bodies[1])
	}
}
