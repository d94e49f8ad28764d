package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/zentra/zentrachat/internal/models"
)

var (
	authorColor = color.New(color.FgCyan, color.Bold)
	timeColor   = color.New(color.FgHiBlack)
	errColor    = color.New(color.FgRed)
)

type client struct {
	baseURL  string
	author   string
	http     *http.Client
	lastSeen time.Time
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "zentrachat server URL")
	author := flag.String("author", "", "name to post messages as")
	flag.Parse()

	if *author == "" {
		fmt.Fprintln(os.Stderr, "usage: client -author <name> [-server <url>]")
		os.Exit(1)
	}

	c := &client{
		baseURL: strings.TrimRight(*serverURL, "/"),
		author:  *author,
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	if err := c.refresh(nil); err != nil {
		errColor.Fprintf(os.Stderr, "cannot reach server: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("type a message and press enter; /refresh to fetch new messages, /quit to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/refresh":
			after := c.lastSeen
			if err := c.refresh(&after); err != nil {
				errColor.Fprintf(os.Stderr, "refresh failed: %v\n", err)
			}
		default:
			if err := c.post(line); err != nil {
				errColor.Fprintf(os.Stderr, "send failed: %v\n", err)
			}
		}
	}
}

// refresh fetches messages newer than after (or everything when nil)
// and renders them. The only state kept around is the newest timestamp
// seen, so the next /refresh skips what is already on screen.
func (c *client) refresh(after *time.Time) error {
	endpoint := c.baseURL + "/messages"
	if after != nil && !after.IsZero() {
		endpoint += "?after=" + url.QueryEscape(after.Format(time.RFC3339Nano))
	}

	resp, err := c.http.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var body struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}

	for _, msg := range body.Messages {
		c.render(msg)
		if msg.CreatedAt.After(c.lastSeen) {
			c.lastSeen = msg.CreatedAt
		}
	}

	return nil
}

func (c *client) post(body string) error {
	payload, err := json.Marshal(map[string]string{
		"author": c.author,
		"body":   body,
	})
	if err != nil {
		return err
	}

	resp, err := c.http.Post(c.baseURL+"/messages", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var msg models.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return err
	}

	c.render(msg)
	if msg.CreatedAt.After(c.lastSeen) {
		c.lastSeen = msg.CreatedAt
	}

	return nil
}

func (c *client) render(msg models.Message) {
	timeColor.Printf("[%s] ", msg.CreatedAt.Local().Format("15:04:05"))
	authorColor.Printf("%s: ", msg.Author)
	fmt.Println(msg.Body)
}
