package msgrender

import "strings"

// NameResolver maps a raw token ID to a display name. ok=false, or a blank
// name, means the ID is unknown.
type NameResolver func(id string) (name string, ok bool)

// SpecialNameResolver maps @everyone / @here to a display name.
type SpecialNameResolver func(key SpecialKey) (name string, ok bool)

// Resolvers 每种结构化标记一个可选的查找函数
//
// 任一字段为 nil 都是合法配置：提及/频道/角色回退为原始 ID，
// 特殊提及回退为 "@everyone" / "@here"。
type Resolvers struct {
	MentionName        NameResolver
	ChannelName        NameResolver
	RoleName           NameResolver
	SpecialMentionName SpecialNameResolver
}

// MapResolver returns a NameResolver backed by a fixed map.
func MapResolver(names map[string]string) NameResolver {
	return func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

func (r *Resolvers) mentionName(id string) string {
	return resolveOr(r.MentionName, id, id)
}

func (r *Resolvers) channelName(id string) string {
	return resolveOr(r.ChannelName, id, id)
}

func (r *Resolvers) roleName(id string) string {
	return resolveOr(r.RoleName, id, id)
}

func (r *Resolvers) specialName(key SpecialKey) string {
	fallback := "@" + string(key)
	if r.SpecialMentionName == nil {
		return fallback
	}
	if name, ok := r.SpecialMentionName(key); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return fallback
}

func resolveOr(resolve NameResolver, id, fallback string) string {
	if resolve == nil {
		return fallback
	}
	if name, ok := resolve(id); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return fallback
}
