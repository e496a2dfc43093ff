package yaml

import "regexp"

// Short tag names as produced by gopkg.in/yaml.v3.
const (
	tagStr       = "!!str"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagNull      = "!!null"
	tagMerge     = "!!merge"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagSeq       = "!!seq"
	tagMap       = "!!map"
)

// implicitRule assigns a tag to plain scalars matching pattern. A
// rule is consulted only when the scalar's first character appears
// in first; the empty scalar consults the NUL bucket.
type implicitRule struct {
	tag     string
	pattern *regexp.Regexp
	first   string
}

// implicitRules is deliberately narrow. Only the true/false
// spellings resolve to booleans, so "yes", "no", "on" and "off"
// stay strings. There is no timestamp rule, so dates stay strings
// too. Integers are listed before floats.
var implicitRules = []implicitRule{
	{tagBool, regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE)$`), "tfTF"},
	{tagInt, regexp.MustCompile(`^(?:[-+]?(?:0|[1-9][0-9_]*)|[-+]?0x_*[0-9a-fA-F][0-9a-fA-F_]*)$`), "-+0123456789"},
	{tagFloat, regexp.MustCompile(`^(?:[-+]?(?:[0-9][0-9_]*)\.[0-9_]*(?:[eE][-+]?[0-9]+)?|[-+]?(?:[0-9][0-9_]*)(?:[eE][-+]?[0-9]+)|[-+]?\.[0-9_]+(?:[eE][-+]?[0-9]+)?|[-+]?\.(?:inf|Inf|INF))$`), "-+0123456789."},
	{tagMerge, regexp.MustCompile(`^(?:<<)$`), "<"},
	{tagNull, regexp.MustCompile(`^(?:~|null|Null|NULL| )$`), "~nN\x00"},
	{tagNull, regexp.MustCompile(`^$`), "\x00"},
}

var implicitBuckets = bucketRules(implicitRules)

func bucketRules(rules []implicitRule) map[byte][]implicitRule {
	buckets := make(map[byte][]implicitRule)
	for _, rule := range rules {
		for i := 0; i < len(rule.first); i++ {
			buckets[rule.first[i]] = append(buckets[rule.first[i]], rule)
		}
	}
	return buckets
}

// resolveTag returns the tag a plain scalar resolves to. Scalars no
// rule claims are strings.
func resolveTag(value string) string {
	var bucket byte
	if len(value) > 0 {
		bucket = value[0]
	}
	for _, rule := range implicitBuckets[bucket] {
		if rule.pattern.MatchString(value) {
			return rule.tag
		}
	}
	return tagStr
}
