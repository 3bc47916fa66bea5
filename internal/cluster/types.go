// Package cluster defines the supported cluster backends and dispatches
// kubeconfig acquisition to the matching fetcher.
package cluster

import "strings"

// Type selects a kubeconfig acquisition strategy.
type Type int

const (
	// Unspecified covers an absent or unrecognized cluster type. It resolves
	// the same way as Generic.
	Unspecified Type = iota
	Generic
	AKS
	Arc
)

// ParseType maps a user supplied cluster type onto a Type. It never fails.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arc":
		return Arc
	case "aks":
		return AKS
	case "generic":
		return Generic
	default:
		return Unspecified
	}
}

func (t Type) String() string {
	switch t {
	case Arc:
		return "arc"
	case AKS:
		return "aks"
	case Generic:
		return "generic"
	default:
		return "unspecified"
	}
}

// Method selects how credentials for a backend are obtained.
type Method int

const (
	MethodUnspecified Method = iota
	MethodKubeconfig
	MethodServiceAccount
	MethodServicePrincipal
)

// ParseMethod maps a user supplied method onto a Method. It never fails.
func ParseMethod(s string) Method {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kubeconfig":
		return MethodKubeconfig
	case "service-account":
		return MethodServiceAccount
	case "service-principal":
		return MethodServicePrincipal
	default:
		return MethodUnspecified
	}
}

func (m Method) String() string {
	switch m {
	case MethodKubeconfig:
		return "kubeconfig"
	case MethodServiceAccount:
		return "service-account"
	case MethodServicePrincipal:
		return "service-principal"
	default:
		return "unspecified"
	}
}
