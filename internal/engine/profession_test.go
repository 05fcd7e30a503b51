package engine

import "testing"

func TestClassifyProfession(t *testing.T) {
	cases := []struct {
		profession string
		want       CareerTrack
	}{
		{"Software Engineer", TrackTechnology},
		{"Senior Product Manager", TrackTechnology},
		{"UX Designer", TrackTechnology},
		{"Data Scientist", TrackTechnology},
		{"Doctor", TrackMedical},
		{"Medical Writer", TrackMedical},
		{"School Teacher", TrackTeaching},
		{"Content Writer", TrackCreative},
		{"Freelance Photographer", TrackCreative},
		{"Business Owner", TrackBusiness},
		{"Startup Founder", TrackBusiness},
		{"Civil Servant", TrackUnknown},
		{"", TrackUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyProfession(tc.profession); got != tc.want {
			t.Fatalf("ClassifyProfession(%q) = %s, want %s", tc.profession, got, tc.want)
		}
	}
}
