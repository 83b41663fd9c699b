package config

import (
	"errors"
	"fmt"
)

// Builder accumulates a partial configuration from presets, sources and
// explicit values, merging each layer over the previous ones with [Merge].
//
// Every chain method returns the builder itself. Source failures (an unknown
// preset, an unreadable file) do not break the chain: they are collected and
// returned by [Builder.Build].
//
// A Builder must not be used from several goroutines at once. Separate
// builders share no state.
type Builder struct {
	values Values
	err    error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{values: Values{}}
}

// Build validates the accumulated configuration with [Validate].
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}
	return Validate(b.values)
}

// BuildUnsafe returns a copy of the accumulated configuration without
// validating it. It is meant for diagnostics.
func (b *Builder) BuildUnsafe() Values {
	return Clone(b.values)
}

// Peek returns a copy of the top level of the accumulated configuration.
// Sections are shared with the builder and must not be modified.
func (b *Builder) Peek() Values {
	return shallowCopy(b.values)
}

// Clone returns a new builder starting from the same state. As with
// [Builder.Peek], sections are shared until either builder merges into them;
// merging always replaces a section instead of modifying it.
func (b *Builder) Clone() *Builder {
	return &Builder{values: shallowCopy(b.values), err: b.err}
}

// Reset discards the accumulated configuration and any collected error.
func (b *Builder) Reset() *Builder {
	b.values = Values{}
	b.err = nil
	return b
}

// Merge merges partial over the accumulated configuration.
func (b *Builder) Merge(partial Values) *Builder {
	b.values = Merge(b.values, partial)
	return b
}

// Override is an alias of [Builder.Merge] for call sites that apply final
// overrides; the last call wins as with any merge.
func (b *Builder) Override(partial Values) *Builder {
	return b.Merge(partial)
}

// Preset merges the named preset. Unknown names are reported by Build.
func (b *Builder) Preset(name string) *Builder {
	preset, err := GetPreset(name)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.Merge(preset)
}

// FromEnv merges the configuration read by [LoadFromEnv].
func (b *Builder) FromEnv(prefix string) *Builder {
	envCfg, err := LoadFromEnv(prefix)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.Merge(envCfg)
}

// FromEnvOverrides merges the variables read by [LoadEnvOverrides]. Placed
// after presets and files it gives the environment precedence over them.
func (b *Builder) FromEnvOverrides(prefix string) *Builder {
	envCfg, err := LoadEnvOverrides(prefix)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.Merge(envCfg)
}

// FromFile merges the configuration read by [LoadFromFile].
func (b *Builder) FromFile(path string) *Builder {
	fileCfg, err := LoadFromFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	return b.Merge(fileCfg)
}

// FromTest merges [LoadTestConfig].
func (b *Builder) FromTest() *Builder {
	return b.Merge(LoadTestConfig())
}

// When calls fn with the builder only if cond is true.
func (b *Builder) When(cond bool, fn func(*Builder)) *Builder {
	if cond {
		fn(b)
	}
	return b
}

// WhenEnv calls fn with the builder only if app.nodeEnv currently equals
// nodeEnv. The check uses the state at the time of the call, so the
// environment must be set earlier in the chain.
func (b *Builder) WhenEnv(nodeEnv string, fn func(*Builder)) *Builder {
	current, _ := lookup(b.values, SectionApp, "nodeEnv")
	return b.When(current == nodeEnv, fn)
}

func (b *Builder) section(name string, partial Values) *Builder {
	return b.Merge(Values{name: partial})
}

// App merges partial into the app section.
func (b *Builder) App(partial Values) *Builder { return b.section(SectionApp, partial) }

// Database merges partial into the database section.
func (b *Builder) Database(partial Values) *Builder { return b.section(SectionDatabase, partial) }

// Auth merges partial into the auth section.
func (b *Builder) Auth(partial Values) *Builder { return b.section(SectionAuth, partial) }

// Redis merges partial into the redis section.
func (b *Builder) Redis(partial Values) *Builder { return b.section(SectionRedis, partial) }

// Admin merges partial into the admin section.
func (b *Builder) Admin(partial Values) *Builder { return b.section(SectionAdmin, partial) }

// Email merges partial into the email section.
func (b *Builder) Email(partial Values) *Builder { return b.section(SectionEmail, partial) }

// Storage merges partial into the storage section.
func (b *Builder) Storage(partial Values) *Builder { return b.section(SectionStorage, partial) }

// Queue merges partial into the queue section.
func (b *Builder) Queue(partial Values) *Builder { return b.section(SectionQueue, partial) }

// Logging merges partial into the logging section.
func (b *Builder) Logging(partial Values) *Builder { return b.section(SectionLogging, partial) }

// Features merges partial into the features section.
func (b *Builder) Features(partial Values) *Builder { return b.section(SectionFeatures, partial) }
