package engine

import "strings"

// CareerTrack classifies a free-text profession into the goal rule
// table that applies to it. Classification is kept separate from the
// numeric goal rules so each side can be tested on its own.
type CareerTrack int

const (
	TrackUnknown CareerTrack = iota
	TrackTechnology
	TrackMedical
	TrackTeaching
	TrackCreative
	TrackBusiness
)

func (t CareerTrack) String() string {
	switch t {
	case TrackTechnology:
		return "technology"
	case TrackMedical:
		return "medical"
	case TrackTeaching:
		return "teaching"
	case TrackCreative:
		return "creative"
	case TrackBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// trackKeywords is evaluated in order; the first track with a matching
// substring wins. Medical comes first so "medical writer" lands in
// medical, not creative.
var trackKeywords = []struct {
	track    CareerTrack
	keywords []string
}{
	{TrackMedical, []string{"doctor", "physician", "surgeon", "dentist", "nurse", "medical"}},
	{TrackTechnology, []string{"engineer", "developer", "software", "programmer", "product", "data", "designer", "architect"}},
	{TrackTeaching, []string{"teacher", "professor", "lecturer", "tutor", "educator"}},
	{TrackCreative, []string{"writer", "artist", "creator", "content", "musician", "photographer", "filmmaker"}},
	{TrackBusiness, []string{"business", "founder", "entrepreneur", "proprietor", "trader", "shop owner"}},
}

// ClassifyProfession maps free-text profession to its career track.
// Unmatched professions get no profession-specific goals.
func ClassifyProfession(profession string) CareerTrack {
	p := strings.ToLower(profession)
	if p == "" {
		return TrackUnknown
	}
	for _, group := range trackKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(p, kw) {
				return group.track
			}
		}
	}
	return TrackUnknown
}
