package petrel

import "strings"

// Materialized topics are derived read views over a source topic, named
// "<source>.$<view>$". Requests for one are resolved against the source
// topic's metadata: the source must exist (or be creatable) and the client
// needs access to the source, not to the view.

// splitMaterializedTopic breaks a materialized topic name into its source and
// view parts. ok is false when the name is not of the materialized form, in
// which case the name is an ordinary topic.
func splitMaterializedTopic(name string) (source, view string, ok bool) {
	if !strings.HasSuffix(name, "$") {
		return "", "", false
	}
	i := strings.Index(name, ".$")
	if i <= 0 {
		return "", "", false
	}
	view = name[i+2 : len(name)-1]
	if view == "" {
		return "", "", false
	}
	return name[:i], view, true
}

func isMaterializedTopic(name string) bool {
	_, _, ok := splitMaterializedTopic(name)
	return ok
}

// sourceTopic returns the topic whose metadata answers for name: the source
// part for a materialized name, otherwise name itself.
func sourceTopic(name string) string {
	if source, _, ok := splitMaterializedTopic(name); ok {
		return source
	}
	return name
}
