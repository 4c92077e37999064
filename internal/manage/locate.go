package manage

import (
	"context"
	"net/http"
	"strings"

	"github.com/danmuck/iloctl/internal/redfish"
)

const (
	serviceRootURI = "/redfish/v1/"
	systemURI      = "/redfish/v1/Systems/1/"
)

type odataRef struct {
	ID string `json:"@odata.id"`
}

// FindManagerResource resolves the first member of the service root's
// manager collection.
func FindManagerResource(ctx context.Context, t redfish.Transport) (string, error) {
	var root struct {
		Managers *odataRef `json:"Managers"`
	}
	body, err := getJSON(ctx, t, serviceRootURI, &root)
	if err != nil {
		return "", err
	}
	if root.Managers == nil || root.Managers.ID == "" {
		return "", &ResourceNotFoundError{Key: "Managers", URI: serviceRootURI, Body: body}
	}

	collectionURI := ensureSlash(root.Managers.ID)
	var collection struct {
		Members []odataRef `json:"Members"`
	}
	body, err = getJSON(ctx, t, collectionURI, &collection)
	if err != nil {
		return "", err
	}
	if len(collection.Members) == 0 || collection.Members[0].ID == "" {
		return "", &ResourceNotFoundError{Key: "Members", URI: collectionURI, Body: body}
	}
	return ensureSlash(collection.Members[0].ID), nil
}

// FindBIOSServiceTarget resolves the system's BIOS service-settings
// resource: the standard path first, the OEM variant as fallback.
func FindBIOSServiceTarget(ctx context.Context, t redfish.Transport) (Target, error) {
	var system struct {
		Bios *odataRef `json:"Bios"`
	}
	body, err := getJSON(ctx, t, systemURI, &system)
	if err != nil {
		return Target{}, err
	}
	if system.Bios == nil || system.Bios.ID == "" {
		return Target{}, &ResourceNotFoundError{Key: "Bios", URI: systemURI, Body: body}
	}
	biosURI := ensureSlash(system.Bios.ID)
	return Target{
		Name:     "service BIOS settings",
		Primary:  biosURI + "service/settings/",
		Fallback: biosURI + "oem/hpe/service/settings/",
	}, nil
}

// getJSON reads uri, decodes into v, and returns the raw body so callers
// can attach it to discovery errors.
func getJSON(ctx context.Context, t redfish.Transport, uri string, v any) ([]byte, error) {
	resp, err := t.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &UpstreamRequestError{Method: http.MethodGet, URI: uri, Status: resp.Status, Body: resp.Body}
	}
	if err := resp.JSON(v); err != nil {
		return nil, &UpstreamRequestError{Method: http.MethodGet, URI: uri, Status: resp.Status, Body: resp.Body}
	}
	return resp.Body, nil
}

func ensureSlash(uri string) string {
	if strings.HasSuffix(uri, "/") {
		return uri
	}
	return uri + "/"
}
