// Package graph is the Microsoft Graph OneNote collaborator: device-code
// authentication, a file-backed token cache, and the locate-or-create
// section plus create-page calls the push commands need. The rest of the
// program depends on nothing here beyond success or failure.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// DefaultBaseURL is the Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// ImagePartName is the multipart name the page HTML references for the
// rendered ink image.
const ImagePartName = "pageImage"

// Client calls the OneNote endpoints with an authenticated http client.
type Client struct {
	hc   *http.Client
	base string
}

// NewClient wraps an http client. An empty base means the production
// Graph endpoint; tests point it at a local server.
func NewClient(hc *http.Client, base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{hc: hc, base: strings.TrimRight(base, "/")}
}

type listResponse struct {
	Value []struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"value"`
}

type createResponse struct {
	ID string `json:"id"`
}

// EnsureSection locates the named notebook and section, creating either
// when absent, and returns the section id.
func (c *Client) EnsureSection(ctx context.Context, notebook, section string) (string, error) {
	notebookID, err := c.ensure(ctx, "/me/onenote/notebooks", "", notebook)
	if err != nil {
		return "", fmt.Errorf("graph: ensure notebook %q: %w", notebook, err)
	}
	sectionID, err := c.ensure(ctx, "/me/onenote/sections", "/me/onenote/notebooks/"+notebookID+"/sections", section)
	if err != nil {
		return "", fmt.Errorf("graph: ensure section %q: %w", section, err)
	}
	return sectionID, nil
}

// ensure finds a OneNote entity by display name, creating it under the
// create path when the lookup comes back empty. An empty createPath means
// create at the lookup path.
func (c *Client) ensure(ctx context.Context, lookupPath, createPath, name string) (string, error) {
	if createPath == "" {
		createPath = lookupPath
	}

	filter := url.Values{}
	filter.Set("$filter", fmt.Sprintf("displayName eq '%s'", strings.ReplaceAll(name, "'", "''")))
	var list listResponse
	if err := c.getJSON(ctx, lookupPath+"?"+filter.Encode(), &list); err != nil {
		return "", err
	}
	for _, v := range list.Value {
		if v.DisplayName == name {
			return v.ID, nil
		}
	}

	body, _ := json.Marshal(map[string]string{"displayName": name})
	var created createResponse
	if err := c.postJSON(ctx, createPath, body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("create %q returned no id", name)
	}
	return created.ID, nil
}

// CreatePage posts a new page into the section: an HTML presentation part
// plus, when image is non-empty, a PNG part named ImagePartName that the
// HTML references.
func (c *Client) CreatePage(ctx context.Context, sectionID, html string, image []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="Presentation"`},
		"Content-Type":        {"text/html"},
	})
	if err != nil {
		return fmt.Errorf("graph: build page request: %w", err)
	}
	if _, err := io.WriteString(part, html); err != nil {
		return fmt.Errorf("graph: build page request: %w", err)
	}

	if len(image) > 0 {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {fmt.Sprintf(`form-data; name=%q`, ImagePartName)},
			"Content-Type":        {"image/png"},
		})
		if err != nil {
			return fmt.Errorf("graph: build page request: %w", err)
		}
		if _, err := part.Write(image); err != nil {
			return fmt.Errorf("graph: build page request: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("graph: build page request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/me/onenote/sections/"+sectionID+"/pages", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("graph: create page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("graph: create page: %s", responseError(resp))
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, responseError(resp))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// responseError summarizes a failed Graph response, keeping the error
// payload short enough for a message box.
func responseError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, trimmed)
}
