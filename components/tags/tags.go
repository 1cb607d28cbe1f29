// Package tags builds the tag lists components attach to their resources.
package tags

import (
	"sort"

	"github.com/lex00/wetwire-stacks-go/intrinsics"
)

// List combines the user's tag map with a stack-scoped Name tag
// ("${AWS::StackName}-<suffix>"). User keys are emitted in sorted order so
// repeated builds produce identical templates; a user-supplied Name wins
// over the generated one.
func List(user map[string]string, nameSuffix string) []intrinsics.Tag {
	list := make([]intrinsics.Tag, 0, len(user)+1)

	if _, ok := user["Name"]; !ok && nameSuffix != "" {
		list = append(list, intrinsics.Tag{
			Key:   "Name",
			Value: intrinsics.Sub{String: "${AWS::StackName}-" + nameSuffix},
		})
	}

	keys := make([]string, 0, len(user))
	for k := range user {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		list = append(list, intrinsics.Tag{Key: k, Value: user[k]})
	}

	return list
}
