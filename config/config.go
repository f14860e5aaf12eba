// Package config loads the host's creation-time configuration (§6, "Host
// configuration input") from a declarative YAML document, for the demo
// bootstrap command and for integration tests that prefer a file over
// constructing host.Config by hand.
//
// Grounded on containerd/nri's plugin configuration loaders
// (plugins/default-validator/default-validator.go), which decode
// gopkg.in/yaml.v3 documents into plain structs with yaml tags; unlike
// that validator config, this schema maps directly onto host.Config
// rather than augmenting it, so Load is a thin marshalling adapter and
// never a second source of truth.
package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/microsoft/vscode-wasm-sub002/host"
)

// Device is one entry of the YAML document's devices list.
type Device struct {
	Kind       string `yaml:"kind"`
	URI        string `yaml:"uri"`
	MountPoint string `yaml:"mountPoint"`
}

// Stdio names, by device kind, which configured device backs each of the
// guest's standard streams.
type Stdio struct {
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Stderr string `yaml:"stderr"`
}

// Document is the on-disk shape described in §11: program name, argv,
// environment, device list and stdio wiring.
type Document struct {
	Program string            `yaml:"program"`
	Args    []string          `yaml:"args"`
	Env     map[string]string `yaml:"env"`
	Devices []Device          `yaml:"devices"`
	Stdio   Stdio             `yaml:"stdio"`
}

// InstanceID is a uuid.UUID correlation identifier assigned to each
// configured device at load time and returned in Host.InstanceIDs; nothing
// in this module attaches it to the dispatcher's logger fields.
type InstanceID = uuid.UUID

// Host is the result of loading a Document: the equivalent host.Config
// plus the per-device instance ids assigned during Load.
type Host struct {
	Config      host.Config
	InstanceIDs []InstanceID // parallel to Config.Devices
}

// Load reads and decodes the YAML document at path into a Host ready to
// construct a dispatcher from.
func Load(path string) (*Host, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc Document) (*Host, error) {
	cfg := host.Config{
		ProgramName: doc.Program,
		Args:        doc.Args,
		Env:         doc.Env,
	}
	ids := make([]InstanceID, len(doc.Devices))
	for i, d := range doc.Devices {
		kind, err := parseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("config: device %d: %w", i, err)
		}
		mount := d.MountPoint
		if mount == "" {
			mount = "/"
		}
		cfg.Devices = append(cfg.Devices, host.DeviceDescription{
			Kind:       kind,
			URI:        d.URI,
			MountPoint: mount,
		})
		ids[i] = uuid.New()
	}

	var err error
	cfg.Stdio.Stdin, err = resolveStdio(doc.Devices, doc.Stdio.Stdin)
	if err != nil {
		return nil, fmt.Errorf("config: stdio.stdin: %w", err)
	}
	cfg.Stdio.Stdout, err = resolveStdio(doc.Devices, doc.Stdio.Stdout)
	if err != nil {
		return nil, fmt.Errorf("config: stdio.stdout: %w", err)
	}
	cfg.Stdio.Stderr, err = resolveStdio(doc.Devices, doc.Stdio.Stderr)
	if err != nil {
		return nil, fmt.Errorf("config: stdio.stderr: %w", err)
	}

	return &Host{Config: cfg, InstanceIDs: ids}, nil
}

func parseKind(s string) (host.DeviceKind, error) {
	switch s {
	case "console":
		return host.DeviceConsole, nil
	case "fileSystem":
		return host.DeviceFileSystem, nil
	default:
		return 0, fmt.Errorf("unknown device kind %q", s)
	}
}

// resolveStdio maps a stdio field's device-kind name to the index of the
// first configured device of that kind; stdio fields name a kind rather
// than a specific mount point because a host typically configures at
// most one console device.
func resolveStdio(devices []Device, kindName string) (int, error) {
	if kindName == "" {
		return 0, nil
	}
	for i, d := range devices {
		if d.Kind == kindName {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no device of kind %q configured", kindName)
}
