package msgrender

// RenderOptions holds options for Render and PlainText.
type RenderOptions struct {
	Resolvers Resolvers
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithResolvers replaces every resolver with the given record.
func WithResolvers(r *Resolvers) Option {
	return func(opts *RenderOptions) {
		if r != nil {
			opts.Resolvers = *r
		}
	}
}

// WithMentionResolver sets the user mention resolver.
func WithMentionResolver(fn NameResolver) Option {
	return func(opts *RenderOptions) {
		opts.Resolvers.MentionName = fn
	}
}

// WithChannelResolver sets the channel reference resolver.
func WithChannelResolver(fn NameResolver) Option {
	return func(opts *RenderOptions) {
		opts.Resolvers.ChannelName = fn
	}
}

// WithRoleResolver sets the role mention resolver.
func WithRoleResolver(fn NameResolver) Option {
	return func(opts *RenderOptions) {
		opts.Resolvers.RoleName = fn
	}
}

// WithSpecialMentionResolver sets the @everyone / @here resolver.
func WithSpecialMentionResolver(fn SpecialNameResolver) Option {
	return func(opts *RenderOptions) {
		opts.Resolvers.SpecialMentionName = fn
	}
}

// WithDirectory resolves names from a loaded Directory.
func WithDirectory(d *Directory) Option {
	return func(opts *RenderOptions) {
		if d != nil {
			opts.Resolvers = *d.Resolvers()
		}
	}
}

// applyOptions applies the given options to empty defaults.
func applyOptions(opts ...Option) *RenderOptions {
	options := &RenderOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}
