// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package openalex harvests the works citing an author's
// publications from the OpenAlex scholarly index.
//
// The result is one citation.Record per citing work, author, and
// institution, ready to be written with citation.WriteCSV.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linjunhe/citation-map/citation"
)

// DefaultBaseURL is the OpenAlex API root.
const DefaultBaseURL = "https://api.openalex.org"

// DefaultDelay keeps a Client under the OpenAlex limit of 10 requests
// per second.
const DefaultDelay = 100 * time.Millisecond

// perPage is the largest page size OpenAlex allows.
const perPage = 200

// A Client fetches from the OpenAlex API. The zero value is ready to
// use.
type Client struct {
	// HTTPClient is used for all requests. If nil,
	// http.DefaultClient is used.
	HTTPClient *http.Client

	// BaseURL is the API root. If empty, DefaultBaseURL is used.
	BaseURL string

	// Mailto, if set, is sent with every request to join the
	// OpenAlex "polite pool".
	Mailto string

	// Delay is the pause after each page of results. If zero,
	// DefaultDelay is used. A negative Delay disables the pause.
	Delay time.Duration

	// Log, if non-nil, receives progress messages.
	Log *log.Logger
}

// Author is the part of an OpenAlex author object used here.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	WorksAPIURL string `json:"works_api_url"`
}

// Work is the part of an OpenAlex work object used here.
type Work struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	CitedByCount int          `json:"cited_by_count"`
	Authorships  []Authorship `json:"authorships"`
}

type Authorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
	Institutions []Institution `json:"institutions"`
}

type Institution struct {
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

type page struct {
	Meta struct {
		NextCursor *string `json:"next_cursor"`
	} `json:"meta"`
	Results []Work `json:"results"`
}

// AuthorPath returns the API path of the author identified by id.
// Identifiers starting with "A" are OpenAlex author IDs; anything
// else is taken to be an ORCID.
func AuthorPath(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(strings.ToUpper(id), "A") {
		return "/authors/" + url.PathEscape(id)
	}
	id = strings.TrimPrefix(id, "https://orcid.org/")
	return "/authors/orcid:" + url.PathEscape(id)
}

// Fetch returns a record for every (citing work, author, institution)
// of every work that cites a publication of the author identified by
// authorID. Citing works without authors, and authors without
// institutions, still produce one record with N/A fields.
//
// A listing that fails part way stops there, and Fetch moves on to
// the next publication. The records gathered are returned along with
// an error joining every listing failure.
func (c *Client) Fetch(ctx context.Context, authorID string) ([]citation.Record, error) {
	var author Author
	if err := c.get(ctx, c.base()+AuthorPath(authorID), nil, &author); err != nil {
		return nil, fmt.Errorf("fetching author %s: %w", authorID, err)
	}
	if author.WorksAPIURL == "" {
		return nil, fmt.Errorf("author %s has no works_api_url", authorID)
	}
	c.logf("author %s (%s)", author.DisplayName, author.ID)

	var errs []error
	pubs, err := c.Works(ctx, author.WorksAPIURL)
	if err != nil {
		c.logf("%v", err)
		errs = append(errs, err)
	}
	c.logf("%d publications", len(pubs))

	var recs []citation.Record
	for i, pub := range pubs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if pub.CitedByCount == 0 || pub.ID == "" {
			continue
		}
		c.logf("publication %d/%d: %s (%d citations)", i+1, len(pubs), pub.Title, pub.CitedByCount)
		workID := pub.ID[strings.LastIndex(pub.ID, "/")+1:]
		citing, err := c.Works(ctx, c.base()+"/works?filter=cites:"+url.QueryEscape(workID))
		if err != nil {
			c.logf("%v", err)
			errs = append(errs, err)
		}
		for _, w := range citing {
			recs = appendRecords(recs, orNA(pub.Title), w)
		}
	}
	return recs, errors.Join(errs...)
}

// appendRecords appends the records of citing work w to recs.
func appendRecords(recs []citation.Record, pub string, w Work) []citation.Record {
	r := citation.Record{
		Publication: pub,
		Title:       orNA(w.Title),
		Author:      citation.NA,
		Institution: citation.NA,
		Country:     citation.NA,
	}
	if len(w.Authorships) == 0 {
		return append(recs, r)
	}
	for _, a := range w.Authorships {
		r.Author = orNA(a.Author.DisplayName)
		if len(a.Institutions) == 0 {
			r.Institution, r.Country = citation.NA, citation.NA
			recs = append(recs, r)
			continue
		}
		for _, inst := range a.Institutions {
			r.Institution = orNA(inst.DisplayName)
			r.Country = orNA(inst.CountryCode)
			recs = append(recs, r)
		}
	}
	return recs
}

func orNA(s string) string {
	if s == "" {
		return citation.NA
	}
	return s
}

// Works returns every work listed at the OpenAlex list URL u,
// following the result cursor to the last page.
func (c *Client) Works(ctx context.Context, u string) ([]Work, error) {
	var works []Work
	cursor := "*"
	for cursor != "" {
		q := url.Values{}
		q.Set("per_page", fmt.Sprint(perPage))
		q.Set("cursor", cursor)
		var p page
		if err := c.get(ctx, u, q, &p); err != nil {
			return works, fmt.Errorf("listing %s: %w", u, err)
		}
		works = append(works, p.Results...)
		cursor = ""
		if p.Meta.NextCursor != nil && len(p.Results) > 0 {
			cursor = *p.Meta.NextCursor
		}
		if err := c.pause(ctx); err != nil {
			return works, err
		}
	}
	return works, nil
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c *Client) pause(ctx context.Context) error {
	d := c.Delay
	if d == 0 {
		d = DefaultDelay
	}
	if d < 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// get fetches u with the extra query parameters q and decodes the
// JSON response into v.
func (c *Client) get(ctx context.Context, u string, q url.Values, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	query := req.URL.Query()
	for k, vs := range q {
		query[k] = vs
	}
	if c.Mailto != "" {
		query.Set("mailto", c.Mailto)
	}
	req.URL.RawQuery = query.Encode()

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: %s: %s", req.URL.Redacted(), resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}
