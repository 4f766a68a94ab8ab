package mdx

// TagSize is the length of a chunk tag.
const TagSize = 4

// chunkTags lists every known tag with the attribute it animates. When several
// tags animate the same title, the first one listed is the one TagFor returns.
var chunkTags = []struct {
	tag   string
	title string
}{
	{"KGAO", "Alpha"},        // geoset animation alpha
	{"KGAC", "Color"},        // geoset animation color
	{"KGTR", "Translation"},  // node translation
	{"KGRT", "Rotation"},     // node rotation
	{"KGSC", "Scaling"},      // node scaling
	{"KMTA", "Alpha"},        // material layer alpha
	{"KMTF", "TextureID"},    // material layer texture
	{"KTAT", "Translation"},  // texture animation
	{"KTAR", "Rotation"},     // texture animation
	{"KTAS", "Scaling"},      // texture animation
	{"KATV", "Visibility"},   // attachment
	{"KLAV", "Visibility"},   // light
	{"KP2V", "Visibility"},   // particle emitter 2
	{"KRVS", "Visibility"},   // ribbon emitter
	{"KLAI", "Intensity"},    // light
	{"KLBI", "AmbIntensity"}, // light
	{"KLAC", "Color"},        // light
	{"KLBC", "AmbColor"},     // light
	{"KP2E", "EmissionRate"}, // particle emitter 2
	{"KP2L", "Latitude"},     // particle emitter 2
	{"KP2N", "Length"},       // particle emitter 2
	{"KP2S", "Speed"},        // particle emitter 2
	{"KP2W", "Width"},        // particle emitter 2
	{"KRHA", "HeightAbove"},  // ribbon emitter
	{"KRHB", "HeightBelow"},  // ribbon emitter
	{"KCTR", "Translation"},  // camera position
	{"KTTR", "Translation"},  // camera target
}

var (
	titleByTag = make(map[string]string, len(chunkTags))
	tagByTitle = make(map[string]string, len(chunkTags))
)

func init() {
	for _, ct := range chunkTags {
		titleByTag[ct.tag] = ct.title
		if _, ok := tagByTitle[ct.title]; !ok {
			tagByTitle[ct.title] = ct.tag
		}
	}
}

// TitleFor returns the attribute title animated by tag.
func TitleFor(tag string) (string, bool) {
	title, ok := titleByTag[tag]
	return title, ok
}

// TagFor returns the default chunk tag for an attribute title.
func TagFor(title string) (string, bool) {
	tag, ok := tagByTitle[title]
	return tag, ok
}
