package policy

import (
	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

type key struct {
	profile  profile.Name
	kind     tracks.Kind
	language string
}

type rule struct {
	name  string
	apply func(tracks.Track, facts) Metadata
}

const forcedLabel = "Forced"

var (
	japaneseVideo = rule{"japanese-video", func(tracks.Track, facts) Metadata {
		return Metadata{Language: "jpn", Name: label("jpn"), Default: true}
	}}
	englishVideo = rule{"english-video", func(tracks.Track, facts) Metadata {
		return Metadata{Language: "eng", Name: label("eng"), Default: true}
	}}
	japaneseVideoUnlessSpanish = rule{"japanese-video-unless-spanish", func(_ tracks.Track, f facts) Metadata {
		return Metadata{Language: "jpn", Name: label("jpn"), Default: !f.hasSpanishAudio}
	}}
	japaneseAudio = rule{"japanese-audio", func(_ tracks.Track, f facts) Metadata {
		return Metadata{Language: "jpn", Name: label("jpn"), Default: !f.hasSpanishAudio}
	}}
	spanishAudio = rule{"spanish-audio", func(tracks.Track, facts) Metadata {
		return Metadata{Language: "spa", Name: label("spa"), Default: true}
	}}
	spanishSubtitle = rule{"spanish-subtitle", func(t tracks.Track, f facts) Metadata {
		if t.Forced {
			return Metadata{Language: "spa", Name: forcedLabel, Default: true}
		}
		return Metadata{Language: "spa", Name: label("spa"), Default: !f.hasForcedSubtitle}
	}}
)

// table is keyed by the full tuple, so no two entries overlap.
var table = map[key]rule{
	{profile.Series, tracks.KindVideo, "und"}: japaneseVideo,
	{profile.Series, tracks.KindVideo, "jpn"}: japaneseVideo,
	{profile.Series, tracks.KindVideo, "eng"}: englishVideo,
	{profile.Series, tracks.KindAudio, "jpn"}: japaneseAudio,
	{profile.Series, tracks.KindAudio, "spa"}: spanishAudio,

	{profile.Movies, tracks.KindVideo, "und"}: englishVideo,
	{profile.Movies, tracks.KindVideo, "jpn"}: japaneseVideoUnlessSpanish,
	{profile.Movies, tracks.KindVideo, "eng"}: englishVideo,
	{profile.Movies, tracks.KindAudio, "jpn"}: japaneseAudio,
	{profile.Movies, tracks.KindAudio, "spa"}: spanishAudio,

	{profile.Series, tracks.KindSubtitles, "spa"}: spanishSubtitle,
	{profile.Movies, tracks.KindSubtitles, "spa"}: spanishSubtitle,
}

func lookup(p profile.Name, kind tracks.Kind, lang string) (rule, bool) {
	r, ok := table[key{profile: p, kind: kind, language: lang}]
	return r, ok
}
