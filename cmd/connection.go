// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// Connection is the duplex byte channel handed to the protocol session.
// Implementations bound their reads: Read returns (0, nil) periodically
// when no bytes arrived, so the session can honor timeouts and
// cancellation between frames.
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// readPollInterval bounds a single blocking read on any transport.
const readPollInterval = 200 * time.Millisecond

// SerialConnection wraps a serial port
type SerialConnection struct {
	port serial.Port
}

func (s *SerialConnection) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConnection) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialConnection) Close() error {
	return s.port.Close()
}

// OpenSerialConnection opens the panel's serial link: 8 data bits, no
// parity, one stop bit. The read timeout turns blocking reads into
// bounded polls.
func OpenSerialConnection(portName string, baudRate int) (Connection, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}
	if err := port.SetReadTimeout(readPollInterval); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %v", err)
	}

	return &SerialConnection{port: port}, nil
}

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// WebSocketConnection adapts a WebSocket byte bridge to the bounded-read
// Connection contract. A pump goroutine reads binary messages into a
// channel; Read drains it with a poll interval so it never blocks
// indefinitely.
type WebSocketConnection struct {
	conn      *websocket.Conn
	messages  chan []byte
	pumpErr   chan error
	buf       []byte
	bufOffset int
	closed    bool
}

func newWebSocketConnection(conn *websocket.Conn) *WebSocketConnection {
	w := &WebSocketConnection{
		conn:     conn,
		messages: make(chan []byte, 16),
		pumpErr:  make(chan error, 1),
	}
	go w.pump()
	return w
}

// pump moves binary messages from the socket to the read channel.
// Non-binary messages are skipped.
func (w *WebSocketConnection) pump() {
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.pumpErr <- err
			close(w.messages)
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		w.messages <- data
	}
}

// takePumpErr returns the error that stopped the pump, if any.
func (w *WebSocketConnection) takePumpErr() error {
	select {
	case err := <-w.pumpErr:
		return err
	default:
		return ErrConnectionClosed
	}
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	// Serve buffered data first
	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	select {
	case data, ok := <-w.messages:
		if !ok {
			w.closed = true
			return 0, w.takePumpErr()
		}
		w.buf = data
		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	case <-time.After(readPollInterval):
		// Bounded-read tick: no data this interval
		return 0, nil
	}
}

func (w *WebSocketConnection) Write(p []byte) (int, error) {
	err := w.conn.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConnection) Close() error {
	w.closed = true
	return w.conn.Close()
}

// OpenWebSocketConnection opens a WebSocket byte bridge with HTTP Basic auth
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (Connection, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return newWebSocketConnection(conn), nil
}

// promptSecret reads a credential from the terminal without echo.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	secretBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		secret, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %v", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(secret), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(secretBytes), nil
}

// GetPCPassword retrieves the 4-hex-digit PC password from the configured
// environment variable, or prompts for it.
func GetPCPassword() (string, error) {
	if passwordEnv != "" {
		if pw := os.Getenv(passwordEnv); pw != "" {
			return pw, nil
		}
	}
	return promptSecret("PC password (4 hex digits): ")
}

// getBridgePassword retrieves the HTTP Basic auth password for the
// WebSocket bridge.
func getBridgePassword() (string, error) {
	if pw := os.Getenv("PARADOX_BRIDGE_PASSWORD"); pw != "" {
		return pw, nil
	}
	return promptSecret("Bridge password: ")
}

// OpenConnection opens either a serial or WebSocket connection based on flags
func OpenConnection() (Connection, string, error) {
	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = getBridgePassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := OpenWebSocketConnection(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		conn, err := OpenSerialConnection(portName, baudRate)
		if err != nil {
			return nil, "", err
		}

		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
