package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
)

var deviceColumns = []output.Column{
	{Header: "ID", Path: "uuid"},
	{Header: "NAME", Path: "deviceName"},
	{Header: "DEVICE ID", Path: "deviceId"},
	{Header: "TYPE", Path: "deviceType"},
	{Header: "STATUS", Path: "deviceStatus"},
	{Header: "LAST SEEN", Path: "lastSeen"},
}

var groupColumns = []output.Column{
	{Header: "ID", Path: "id"},
	{Header: "NAME", Path: "groupName"},
	{Header: "TYPE", Path: "groupType"},
	{Header: "CREATED", Path: "createdAt"},
}

// Registry manages devices and device groups.
type Registry struct {
	doer Doer
}

// NewRegistry creates the registry binding.
func NewRegistry(doer Doer) *Registry {
	return &Registry{doer: doer}
}

func (r *Registry) do(ctx context.Context, req connection.Request) (*connection.Response, error) {
	return r.doer.Do(ctx, domain.ServiceRegistry, req)
}

func (r *Registry) raw(ctx context.Context, req connection.Request) (output.Result, error) {
	resp, err := r.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}

// CreateDevice registers a device.
func (r *Registry) CreateDevice(ctx context.Context, name, id string, kind domain.DeviceType) (output.Result, error) {
	logger.L(ctx).Debug("creating device", "name", name, "device_id", id, "type", kind)
	return r.raw(ctx, connection.Request{
		Method: http.MethodPost,
		Path:   V1 + "devices",
		Query: url.Values{
			"deviceName": {name},
			"deviceId":   {id},
			"deviceType": {string(kind)},
		},
	})
}

// DeleteDevice removes a device.
func (r *Registry) DeleteDevice(ctx context.Context, device uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("deleting device", "device", device)
	return r.raw(ctx, connection.Request{Method: http.MethodDelete, Path: V1 + "devices/" + device.String()})
}

// GetDevice returns the details of one device.
func (r *Registry) GetDevice(ctx context.Context, device uuid.UUID) (output.Result, error) {
	return r.raw(ctx, connection.Request{Method: http.MethodGet, Path: V1 + "devices/" + device.String()})
}

// ListAllDevices returns every device of the namespace.
func (r *Registry) ListAllDevices(ctx context.Context) (output.Result, error) {
	resp, err := r.do(ctx, connection.Request{Method: http.MethodGet, Path: V1 + "devices"})
	if err != nil {
		return nil, err
	}
	return tableResult(resp, "values", deviceColumns...), nil
}

// ListGroupDevices returns the members of a group.
func (r *Registry) ListGroupDevices(ctx context.Context, group uuid.UUID) (output.Result, error) {
	return r.raw(ctx, connection.Request{Method: http.MethodGet, Path: V1 + "device_groups/" + group.String() + "/devices"})
}

// ListDeviceGroups returns the groups a device belongs to.
func (r *Registry) ListDeviceGroups(ctx context.Context, device uuid.UUID) (output.Result, error) {
	return r.raw(ctx, connection.Request{Method: http.MethodGet, Path: V1 + "devices/" + device.String() + "/groups"})
}

// ListAllGroups returns every group of the namespace.
func (r *Registry) ListAllGroups(ctx context.Context) (output.Result, error) {
	resp, err := r.do(ctx, connection.Request{Method: http.MethodGet, Path: V1 + "device_groups"})
	if err != nil {
		return nil, err
	}
	return tableResult(resp, "values", groupColumns...), nil
}

// ListDevices dispatches `device list` on the selector.
func (r *Registry) ListDevices(ctx context.Context, sel domain.ListSelector) (output.Result, error) {
	switch sel.Scope {
	case domain.ListByDevice:
		return r.GetDevice(ctx, sel.ID)
	case domain.ListByGroup:
		return r.ListGroupDevices(ctx, sel.ID)
	default:
		return r.ListAllDevices(ctx)
	}
}

// ListGroups dispatches `group list` on the selector. --group lists the
// members of that group.
func (r *Registry) ListGroups(ctx context.Context, sel domain.ListSelector) (output.Result, error) {
	switch sel.Scope {
	case domain.ListByDevice:
		return r.ListDeviceGroups(ctx, sel.ID)
	case domain.ListByGroup:
		return r.ListGroupDevices(ctx, sel.ID)
	default:
		return r.ListAllGroups(ctx)
	}
}

// CreateGroup creates a device group.
func (r *Registry) CreateGroup(ctx context.Context, name string, kind domain.GroupType) (output.Result, error) {
	logger.L(ctx).Debug("creating device group", "name", name)
	return r.raw(ctx, connection.Request{
		Method: http.MethodPost,
		Path:   V1 + "device_groups",
		JSON:   map[string]string{"name": name, "groupType": string(kind)},
	})
}

// RenameGroup changes the name of a group.
func (r *Registry) RenameGroup(ctx context.Context, group uuid.UUID, name string) (output.Result, error) {
	logger.L(ctx).Debug("renaming group", "group", group, "name", name)
	return r.raw(ctx, connection.Request{
		Method: http.MethodPut,
		Path:   V1 + "device_groups/" + group.String() + "/rename",
		Query:  url.Values{"groupId": {group.String()}, "groupName": {name}},
	})
}

// AddToGroup adds a device to a group.
func (r *Registry) AddToGroup(ctx context.Context, group, device uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("adding device to group", "device", device, "group", group)
	return r.membership(ctx, http.MethodPost, group, device)
}

// RemoveFromGroup removes a device from a group.
func (r *Registry) RemoveFromGroup(ctx context.Context, group, device uuid.UUID) (output.Result, error) {
	logger.L(ctx).Debug("removing device from group", "device", device, "group", group)
	return r.membership(ctx, http.MethodDelete, group, device)
}

func (r *Registry) membership(ctx context.Context, method string, group, device uuid.UUID) (output.Result, error) {
	return r.raw(ctx, connection.Request{
		Method: method,
		Path:   V1 + "device_groups/" + group.String() + "/devices/" + device.String(),
		Query:  url.Values{"deviceId": {device.String()}, "groupId": {group.String()}},
	})
}
