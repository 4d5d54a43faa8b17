// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package confine

import (
	"fmt"
	"time"

	"github.com/berth-host/berth/pkg/compose"
	"github.com/berth-host/berth/pkg/policy"
)

// Parser turns raw declaration text into a document.
type Parser interface {
	Parse(data []byte) (*compose.Document, error)
}

// Validator checks a parsed declaration against platform policy and
// accumulates every violation.
type Validator interface {
	Validate(doc *compose.Document) *Report
}

// Transformer rewrites a validated declaration into its confined form.
type Transformer interface {
	Transform(doc *compose.Document, project string, startPort int) (*Transformation, error)
}

// Serializer re-emits a confined document, stamping the generation-metadata
// block.
type Serializer interface {
	Serialize(doc *compose.Document) ([]byte, error)
}

// Analyzer classifies a declaration's services for completeness warnings.
type Analyzer interface {
	Analyze(doc *compose.Document) *Analysis
}

// Outcome is a successful end-to-end run: the confined YAML, the service
// names in declaration order, and every port assignment made.
type Outcome struct {
	YAML         []byte
	Services     []string
	PortMappings []PortMapping
}

// Pipeline composes the four stages into one Process call. The zero
// configuration uses the platform defaults; options replace individual
// stages. A Pipeline holds no per-call state and is safe for concurrent
// use.
type Pipeline struct {
	parser      Parser
	validator   Validator
	transformer Transformer
	serializer  Serializer
	analyzer    Analyzer
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithParser replaces the default parser stage.
func WithParser(p Parser) Option {
	return func(pl *Pipeline) { pl.parser = p }
}

// WithValidator replaces the default policy validator.
func WithValidator(v Validator) Option {
	return func(pl *Pipeline) { pl.validator = v }
}

// WithTransformer replaces the default namespacing transformer.
func WithTransformer(t Transformer) Option {
	return func(pl *Pipeline) { pl.transformer = t }
}

// WithSerializer replaces the default serializer stage.
func WithSerializer(s Serializer) Option {
	return func(pl *Pipeline) { pl.serializer = s }
}

// WithAnalyzer replaces the default completeness analyzer.
func WithAnalyzer(a Analyzer) Option {
	return func(pl *Pipeline) { pl.analyzer = a }
}

// WithClock fixes the timestamp source the default serializer stamps into
// the generation-metadata block.
func WithClock(now func() time.Time) Option {
	return func(pl *Pipeline) { pl.now = now }
}

// New builds a Pipeline, filling unconfigured stages with the defaults.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.parser == nil {
		p.parser = &parser{}
	}
	if p.validator == nil {
		p.validator = newValidator()
	}
	if p.transformer == nil {
		p.transformer = &transformer{}
	}
	if p.serializer == nil {
		p.serializer = &serializer{now: p.now}
	}
	if p.analyzer == nil {
		p.analyzer = &analyzer{}
	}
	return p
}

// Process runs Parse, Validate, Transform, and Serialize on raw declaration
// text, stopping at the first failing stage. Parse failures return a
// ParseError, policy failures a ViolationsError carrying the full report,
// and transformer contract guards pass through verbatim.
func (p *Pipeline) Process(data []byte, project string, startPort int) (*Outcome, error) {
	doc, err := p.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	if report := p.validator.Validate(doc); !report.Valid() {
		return nil, &ViolationsError{Report: report}
	}
	res, err := p.transformer.Transform(doc, project, startPort)
	if err != nil {
		return nil, err
	}
	out, err := p.serializer.Serialize(res.Document)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		YAML:         out,
		Services:     res.Document.ServiceNames(),
		PortMappings: res.PortMappings,
	}, nil
}

// Analyze runs the completeness analyzer on an already-parsed document,
// independent of the validate/transform path.
func (p *Pipeline) Analyze(doc *compose.Document) *Analysis {
	return p.analyzer.Analyze(doc)
}

// parser is the default Parser stage. It wraps compose parse failures in
// ParseError so callers can tell input problems from policy problems.
type parser struct{}

func (p *parser) Parse(data []byte) (*compose.Document, error) {
	doc, err := compose.Parse(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// serializer is the default Serializer stage.
type serializer struct {
	now func() time.Time
}

func (s *serializer) Serialize(doc *compose.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("serialize: document is nil")
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	doc.SetExtension(policy.ExtensionKey, now().UTC().Format(time.RFC3339))
	return doc.Marshal()
}

// Parse parses raw declaration text with the default parser stage.
func Parse(data []byte) (*compose.Document, error) {
	return (&parser{}).Parse(data)
}

// Validate checks a parsed declaration with the default policy validator.
func Validate(doc *compose.Document) *Report {
	return newValidator().Validate(doc)
}

// Transform rewrites a validated declaration with the default transformer.
// The caller is responsible for validating first; the Pipeline does both.
func Transform(doc *compose.Document, project string, startPort int) (*Transformation, error) {
	return (&transformer{}).Transform(doc, project, startPort)
}

// AnalyzeCompleteness classifies a declaration's services with the default
// analyzer.
func AnalyzeCompleteness(doc *compose.Document) *Analysis {
	return (&analyzer{}).Analyze(doc)
}

// Process runs the default pipeline end to end on raw declaration text.
func Process(data []byte, project string, startPort int) (*Outcome, error) {
	return New().Process(data, project, startPort)
}
