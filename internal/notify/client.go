package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/amacleod/pulse/internal/agent"
	"github.com/amacleod/pulse/internal/constants"
	"github.com/amacleod/pulse/internal/keyring"
	"github.com/amacleod/pulse/internal/reminder"
)

var (
	findProcessFunc = ps.FindProcess
)

// Client talks to the local pulse agent over its loopback HTTP API and
// implements reminder.Platform. The agent is discovered through its lockfile
// ("port|pid|secret"); the pid is validated against a live pulse process
// before any request is sent.
type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

var _ reminder.Platform = (*Client)(nil)

func (c *Client) List() ([]reminder.Scheduled, error) {
	var notifications []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		Kind   string `json:"kind"`
		Hour   int    `json:"hour"`
		Minute int    `json:"minute"`
	}
	if err := c.do("GET", "/api/v1/scheduled", nil, &notifications); err != nil {
		return nil, err
	}

	scheduled := make([]reminder.Scheduled, 0, len(notifications))
	for _, n := range notifications {
		scheduled = append(scheduled, reminder.Scheduled{
			ID:     n.ID,
			Title:  n.Title,
			Body:   n.Body,
			Kind:   n.Kind,
			Hour:   n.Hour,
			Minute: n.Minute,
		})
	}
	return scheduled, nil
}

func (c *Client) Schedule(req reminder.ScheduleRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do("POST", "/api/v1/scheduled", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Cancel(id string) error {
	return c.do("DELETE", "/api/v1/scheduled/"+id, nil, nil)
}

func (c *Client) CancelAll() error {
	return c.do("DELETE", "/api/v1/scheduled", nil, nil)
}

func (c *Client) HasPermissions() (bool, error) {
	var resp struct {
		Granted bool `json:"granted"`
	}
	if err := c.do("GET", "/api/v1/permissions", nil, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

func (c *Client) RequestPermissions() (bool, error) {
	var resp struct {
		Granted bool `json:"granted"`
	}
	if err := c.do("POST", "/api/v1/permissions/request", nil, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

func (c *Client) do(method, path string, body, out any) error {
	port, secret, err := findAndValidateAgent()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("http://127.0.0.1:%s%s", port, path), reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Pulse-Secret", secret)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("agent request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

// findAndValidateAgent reads the agent lockfile, validates its contents, and
// confirms the recorded pid belongs to a running pulse process.
func findAndValidateAgent() (string, string, error) {
	dir, err := agent.ConfigDir()
	if err != nil {
		return "", "", err
	}

	content, err := os.ReadFile(agent.LockfilePath(dir))
	if err != nil {
		return "", "", errors.New("pulse agent is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 && len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}

	var secret string
	if len(parts) == 3 {
		secret = strings.TrimSpace(parts[2])
	}
	if secret == "" {
		// Older agents kept the secret out of the lockfile; fall back to the
		// keyring copy.
		secret, err = keyring.GetAgentSecret()
		if err != nil {
			return "", "", errors.New("agent secret not available")
		}
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("pulse agent process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.AgentExecutableName) {
		return "", "", fmt.Errorf("process with PID %d is not a pulse agent (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}
