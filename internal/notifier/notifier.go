// Package notifier delivers desktop notifications through the routinely
// tray app. The tray app writes a lockfile holding "port|pid|secret" and
// accepts JSON posts on 127.0.0.1:port.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/scheduler"
)

const (
	trayExecutable = "routinely-tray"
	secretHeader   = "X-Routinely-Secret"
	// titles listed in a daily message before it switches to "and N more"
	maxListedTitles = 3
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("routinely-tray is not running")
)

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type Notifier struct {
	client  *http.Client
	retries int
	delay   time.Duration
}

func New() *Notifier {
	return &Notifier{
		client:  &http.Client{Timeout: 5 * time.Second},
		retries: constants.NotifyMaxRetries,
		delay:   constants.NotifyRetryDelay,
	}
}

// Notify finds the tray app and posts text to it. Transport failures are
// retried; a non-200 answer is not.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	lock, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}
	var lastErr error
	for attempt := 1; attempt <= n.retries; attempt++ {
		lastErr = n.send(ctx, lock, payload)
		var statusErr *StatusError
		if lastErr == nil || errors.As(lastErr, &statusErr) {
			return lastErr
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.delay):
		}
	}
	return fmt.Errorf("notification failed after %d attempts: %w", n.retries, lastErr)
}

// DailyMessage summarizes what is left in plan. It reports false when every
// item is done or the plan is empty.
func DailyMessage(plan scheduler.DayPlan) (string, bool) {
	var left []string
	for _, it := range plan.Items {
		if !it.Done() {
			left = append(left, it.Title)
		}
	}
	if len(left) == 0 {
		return "", false
	}

	noun := "items"
	if len(left) == 1 {
		noun = "item"
	}
	listed := left
	if len(listed) > maxListedTitles {
		listed = listed[:maxListedTitles]
	}
	msg := fmt.Sprintf("%d %s left today (%d%% done): %s", len(left), noun, plan.Percent(), strings.Join(listed, ", "))
	if extra := len(left) - len(listed); extra > 0 {
		msg += fmt.Sprintf(" and %d more", extra)
	}
	return msg, true
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// The tray app may move its lockfile through settings.json
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}
	return trayConfigDir, nil
}

type trayLock struct {
	Port   int
	PID    int
	Secret string
}

func parseLockfile(content string) (trayLock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}
	if strings.TrimSpace(parts[0]) == "" {
		return trayLock{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[2]) == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}
	return trayLock{Port: port, PID: pid, Secret: parts[2]}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (trayLock, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}
	lock, err := parseLockfile(string(content))
	if err != nil {
		return trayLock{}, err
	}

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return trayLock{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), trayExecutable) {
		return trayLock{}, fmt.Errorf("process with PID %d is not %s (is %s)", lock.PID, trayExecutable, process.Executable())
	}
	return lock, nil
}

// StatusError is a non-200 answer from the tray app.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notification failed with status %d: %s", e.Code, e.Body)
}

func (n *Notifier) send(ctx context.Context, lock trayLock, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, lock.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return &StatusError{Code: res.StatusCode, Body: string(body)}
}
