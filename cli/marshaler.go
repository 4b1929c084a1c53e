package cli

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/flintwinters/jisp"
)

type marshaler interface {
	Marshal(v any) ([]byte, error)
}

func (cli *cli) createMarshaler() marshaler {
	var m marshaler
	switch {
	case cli.yamlOutput:
		m = &yamlMarshaler{}
	case cli.compact:
		m = marshalerFunc(jisp.Marshal)
	case cli.colorEnabled():
		m = &colorMarshaler{}
	default:
		m = marshalerFunc(jisp.MarshalIndent)
	}
	if cli.raw && !cli.yamlOutput {
		m = &rawMarshaler{m}
	}
	return m
}

type marshalerFunc func(any) ([]byte, error)

func (f marshalerFunc) Marshal(v any) ([]byte, error) {
	return f(v)
}

type rawMarshaler struct {
	m marshaler
}

func (m *rawMarshaler) Marshal(v any) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return m.m.Marshal(v)
}

type colorMarshaler struct{}

func (m *colorMarshaler) Marshal(v any) ([]byte, error) {
	return jsonFormatter().Marshal(v)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	var bs bytes.Buffer
	enc := yaml.NewEncoder(&bs)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return bs.Bytes(), nil
}
