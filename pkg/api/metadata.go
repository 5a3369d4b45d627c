// This file contains functions that simplify generation of API metadata.

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/golang/glog"
)

type Metadata struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	HREF     string            `json:"href"`
	Versions []VersionMetadata `json:"versions,omitempty"`
}

type VersionMetadata struct {
	ID          string               `json:"id"`
	Kind        string               `json:"kind"`
	HREF        string               `json:"href"`
	Collections []CollectionMetadata `json:"collections,omitempty"`
}

type CollectionMetadata struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	HREF string `json:"href"`
}

// ServeHTTP sends API documentation response.
func (m *Metadata) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	// Set the content type:
	w.Header().Set("Content-Type", "application/json")

	// Prepare the body:
	body := Metadata{
		ID:   m.ID,
		Kind: "API",
		HREF: r.URL.Path,
	}
	for _, v := range m.Versions {
		href := v.HREF
		if href == "" {
			href = v.ID
		}
		body.Versions = append(body.Versions, VersionMetadata{
			ID:   v.ID,
			Kind: "APIVersion",
			HREF: fmt.Sprintf("%s/%s", r.URL.Path, href),
		})
	}

	data, err := json.Marshal(body)
	if err != nil {
		SendPanic(w, r)
		return
	}

	// Send the response:
	_, err = w.Write(data)
	if err != nil {
		err = fmt.Errorf("Can't send response body for request '%s'", r.URL.Path)
		glog.Error(err)
		sentry.CaptureException(err)
		return
	}
}

// ServeHTTP sends API version v1 documentation response.
func (v *VersionMetadata) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set the content type:
	w.Header().Set("Content-Type", "application/json")

	// Prepare the body:
	body := VersionMetadata{
		ID:   v.ID,
		Kind: "APIVersion",
		HREF: r.URL.Path,
	}
	for _, c := range v.Collections {
		href := c.HREF
		if href == "" {
			href = c.ID
		}
		body.Collections = append(body.Collections, CollectionMetadata{
			ID:   c.ID,
			Kind: c.Kind,
			HREF: fmt.Sprintf("%s/%s", r.URL.Path, href),
		})
	}

	data, err := json.Marshal(body)
	if err != nil {
		SendPanic(w, r)
		return
	}

	// Send the response:
	_, err = w.Write(data)
	if err != nil {
		glog.Errorf("Can't send response body for request '%s'", r.URL.Path)
		return
	}
}
