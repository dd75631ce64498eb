package domain

import "strings"

// Resource is the first level of the command grammar.
type Resource int

const (
	ResourceInit Resource = iota
	ResourceCampaign
	ResourceDevice
	ResourceGroup
	ResourcePackage
	ResourceUpdate
)

var resourceNames = [...]string{
	ResourceInit:     "init",
	ResourceCampaign: "campaign",
	ResourceDevice:   "device",
	ResourceGroup:    "group",
	ResourcePackage:  "package",
	ResourceUpdate:   "update",
}

func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "unknown"
}

// Resources lists the first-level vocabulary in declaration order.
func Resources() []Resource {
	return []Resource{ResourceInit, ResourceCampaign, ResourceDevice, ResourceGroup, ResourcePackage, ResourceUpdate}
}

// ParseResource parses a case-insensitive first-level token.
func ParseResource(s string) (Resource, error) {
	lower := strings.ToLower(s)
	for i, name := range resourceNames {
		if name == lower {
			return Resource(i), nil
		}
	}
	return 0, ErrUnknownCommand.WithDetails("unknown command: " + s)
}

// Subcommand is the second level of the command grammar. The concrete types
// are CampaignOp, DeviceOp, GroupOp, PackageOp and UpdateOp.
type Subcommand interface {
	Resource() Resource
	String() string
	isSubcommand()
}

// CampaignOp selects a campaign operation.
type CampaignOp int

const (
	CampaignList CampaignOp = iota
	CampaignCreate
	CampaignLaunch
	CampaignCancel
	CampaignListUpdates
	CampaignCreateUpdate
)

var campaignOps = [...]string{"list", "create", "launch", "cancel", "listupdates", "createupdate"}

func (CampaignOp) Resource() Resource { return ResourceCampaign }
func (o CampaignOp) String() string  { return campaignOps[o] }
func (CampaignOp) isSubcommand()      {}

// DeviceOp selects a device operation.
type DeviceOp int

const (
	DeviceList DeviceOp = iota
	DeviceCreate
	DeviceDelete
)

var deviceOps = [...]string{"list", "create", "delete"}

func (DeviceOp) Resource() Resource { return ResourceDevice }
func (o DeviceOp) String() string  { return deviceOps[o] }
func (DeviceOp) isSubcommand()      {}

// GroupOp selects a device group operation.
type GroupOp int

const (
	GroupList GroupOp = iota
	GroupCreate
	GroupAdd
	GroupRename
	GroupRemove
)

var groupOps = [...]string{"list", "create", "add", "rename", "remove"}

func (GroupOp) Resource() Resource { return ResourceGroup }
func (o GroupOp) String() string  { return groupOps[o] }
func (GroupOp) isSubcommand()      {}

// PackageOp selects a package operation.
type PackageOp int

const (
	PackageList PackageOp = iota
	PackageAdd
	PackageFetch
	PackageUpload
)

var packageOps = [...]string{"list", "add", "fetch", "upload"}

func (PackageOp) Resource() Resource { return ResourcePackage }
func (o PackageOp) String() string  { return packageOps[o] }
func (PackageOp) isSubcommand()      {}

// UpdateOp selects a multi-target update operation.
type UpdateOp int

const (
	UpdateCreate UpdateOp = iota
	UpdateLaunch
)

var updateOps = [...]string{"create", "launch"}

func (UpdateOp) Resource() Resource { return ResourceUpdate }
func (o UpdateOp) String() string  { return updateOps[o] }
func (UpdateOp) isSubcommand()      {}

// Command is a parsed (resource, subcommand) pair. Sub is nil for init.
type Command struct {
	Resource Resource
	Sub      Subcommand
}

func (c Command) String() string {
	if c.Sub == nil {
		return c.Resource.String()
	}
	return c.Resource.String() + " " + c.Sub.String()
}

// Subcommands lists the second-level vocabulary of r in declaration order.
func Subcommands(r Resource) []Subcommand {
	var subs []Subcommand
	switch r {
	case ResourceCampaign:
		for i := range campaignOps {
			subs = append(subs, CampaignOp(i))
		}
	case ResourceDevice:
		for i := range deviceOps {
			subs = append(subs, DeviceOp(i))
		}
	case ResourceGroup:
		for i := range groupOps {
			subs = append(subs, GroupOp(i))
		}
	case ResourcePackage:
		for i := range packageOps {
			subs = append(subs, PackageOp(i))
		}
	case ResourceUpdate:
		for i := range updateOps {
			subs = append(subs, UpdateOp(i))
		}
	}
	return subs
}

// ParseSubcommand parses a case-insensitive second-level token for r.
func ParseSubcommand(r Resource, s string) (Subcommand, error) {
	lower := strings.ToLower(s)
	for _, sub := range Subcommands(r) {
		if sub.String() == lower {
			return sub, nil
		}
	}
	return nil, ErrUnknownCommand.WithDetails("unknown " + r.String() + " subcommand: " + s)
}

// ParseCommand parses both grammar levels. Init takes no subcommand token;
// every other resource requires exactly one.
func ParseCommand(resource string, sub string) (Command, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return Command{}, err
	}
	if r == ResourceInit {
		if sub != "" {
			return Command{}, ErrUnknownCommand.WithDetails("init takes no subcommand: " + sub)
		}
		return Command{Resource: ResourceInit}, nil
	}
	if sub == "" {
		return Command{}, ErrArgs.WithDetails(r.String() + " requires a subcommand")
	}
	s, err := ParseSubcommand(r, sub)
	if err != nil {
		return Command{}, err
	}
	return Command{Resource: r, Sub: s}, nil
}
