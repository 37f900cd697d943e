package reconcile

import "strings"

var (
	bottomLabels = map[string]struct{}{
		"b": {}, "bottom": {}, "bot": {}, "bottomlayer": {}, "bottom layer": {},
		"bottom_layer": {}, "solder": {}, "back": {},
	}
	topLabels = map[string]struct{}{
		"t": {}, "top": {}, "toplayer": {}, "top layer": {}, "top_layer": {},
		"front": {}, "component": {},
	}
)

// ClassifyLayer maps a free-text side label to a Layer. Matching is
// case-insensitive and ignores surrounding whitespace. Unknown labels,
// including the empty string, classify as LayerUnknown.
func ClassifyLayer(label string) Layer {
	key := strings.ToLower(strings.TrimSpace(label))
	if _, ok := bottomLabels[key]; ok {
		return LayerBottom
	}
	if _, ok := topLabels[key]; ok {
		return LayerTop
	}
	return LayerUnknown
}
