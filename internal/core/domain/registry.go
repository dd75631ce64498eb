package domain

import (
	"strings"

	"github.com/google/uuid"
)

// DeviceType classifies a registered device.
type DeviceType string

const (
	DeviceVehicle DeviceType = "Vehicle"
	DeviceOther   DeviceType = "Other"
)

// ParseDeviceType parses a case-insensitive device type.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(s) {
	case "vehicle":
		return DeviceVehicle, nil
	case "other":
		return DeviceOther, nil
	default:
		return "", ErrParse.WithDetails("unknown device type: " + s)
	}
}

// GroupType classifies a device group.
type GroupType string

const GroupStatic GroupType = "static"

// ListScope is the outcome of the listing selector flags.
type ListScope int

const (
	ListAll ListScope = iota
	ListByDevice
	ListByGroup
)

// ListSelector is the parsed --all / --device / --group combination.
type ListSelector struct {
	Scope ListScope
	ID    uuid.UUID
}

// NewListSelector resolves the listing flags. At least one must be set.
// Every given ID is parsed first; when several flags are set the first in
// the order --all, --device, --group wins.
func NewListSelector(all bool, device, group string) (ListSelector, error) {
	if !all && device == "" && group == "" {
		return ListSelector{}, ErrArgs.WithDetails("one of --all, --device, or --group required")
	}

	var deviceID, groupID uuid.UUID
	var err error
	if device != "" {
		if deviceID, err = ParseUUID("device", device); err != nil {
			return ListSelector{}, err
		}
	}
	if group != "" {
		if groupID, err = ParseUUID("group", group); err != nil {
			return ListSelector{}, err
		}
	}

	switch {
	case all:
		return ListSelector{Scope: ListAll}, nil
	case device != "":
		return ListSelector{Scope: ListByDevice, ID: deviceID}, nil
	default:
		return ListSelector{Scope: ListByGroup, ID: groupID}, nil
	}
}

// SelectorCount returns how many listing flags are set.
func SelectorCount(all bool, device, group string) int {
	n := 0
	for _, set := range []bool{all, device != "", group != ""} {
		if set {
			n++
		}
	}
	return n
}

// ParseUUID parses an identifier flag value.
func ParseUUID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrParse.WithDetails("--" + name + " is not a UUID").WithCause(err)
	}
	return id, nil
}
