package mkvinfo

import (
	"testing"

	"github.com/remko/go-mkvparse"

	"mkvnorm/internal/tracks"
)

const sample = `{
  "container": {"recognized": true, "supported": true, "type": "Matroska", "properties": {"title": "Old Title"}},
  "errors": [],
  "tracks": [
    {"id": 0, "type": "video", "codec": "AVC/H.264/MPEG-4p10", "properties": {"language": "und", "default_track": true}},
    {"id": 1, "type": "audio", "codec": "AAC", "properties": {"language": "jpn", "track_name": "Stereo", "default_track": false}},
    {"id": 2, "type": "subtitles", "codec": "SubRip/SRT", "properties": {"language": "eng", "forced_track": true}},
    {"id": 3, "type": "buttons", "codec": "HDMV", "properties": {}}
  ]
}`

func TestDecode(t *testing.T) {
	res, err := Decode("/d/a.mkv", []byte(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Title != "Old Title" {
		t.Fatalf("unexpected title %q", res.Title)
	}
	if len(res.Tracks) != 3 {
		t.Fatalf("expected 3 editable tracks, got %d", len(res.Tracks))
	}
	audio := res.Tracks[1]
	if audio.SourceID != 1 || audio.Kind != tracks.KindAudio || audio.Language != "jpn" || audio.Name != "Stereo" || audio.Default {
		t.Fatalf("unexpected audio track %+v", audio)
	}
	sub := res.Tracks[2]
	if !sub.Default {
		t.Fatalf("missing default_track should default to true")
	}
	if !sub.Forced {
		t.Fatalf("forced flag not decoded")
	}

	c := res.Container()
	if c.Len() != 3 || c.Title != "Old Title" {
		t.Fatalf("unexpected container %+v", c.Tracks())
	}
	if len(res.RawJSON()) == 0 {
		t.Fatalf("raw payload not retained")
	}
}

func TestDecodeRejectsUnrecognized(t *testing.T) {
	if _, err := Decode("/d/a.txt", []byte(`{"container":{"recognized":false},"tracks":[]}`)); err == nil {
		t.Fatalf("expected error for unrecognized container")
	}
	if _, err := Decode("/d/a.mkv", []byte(`{"container":{"recognized":true},"errors":["boom"]}`)); err == nil {
		t.Fatalf("expected error when mkvmerge reports errors")
	}
	if _, err := Decode("/d/a.mkv", []byte(`not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCodecName(t *testing.T) {
	cases := map[string]string{
		"A_AAC":           "AAC",
		"A_AAC/MPEG4/LC":  "AAC",
		"A_AC3":           "AC-3",
		"A_EAC3":          "E-AC-3",
		"S_TEXT/UTF8":     "SubRip/SRT",
		"V_MPEG4/ISO/AVC": "AVC/H.264/MPEG-4p10",
		"X_CUSTOM":        "X_CUSTOM",
	}
	for in, want := range cases {
		if got := CodecName(in); got != want {
			t.Fatalf("CodecName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTrackHandlerCollectsEntries(t *testing.T) {
	h := newTrackHandler()
	var info mkvparse.ElementInfo

	_ = h.HandleString(mkvparse.TitleElement, "Segment Title", info)

	_, _ = h.HandleMasterBegin(mkvparse.TrackEntryElement, info)
	_ = h.HandleInteger(mkvparse.TrackTypeElement, trackTypeVideo, info)
	_ = h.HandleString(mkvparse.CodecIDElement, "V_MPEG4/ISO/AVC", info)
	_ = h.HandleString(mkvparse.LanguageElement, "und", info)
	_ = h.HandleMasterEnd(mkvparse.TrackEntryElement, info)

	_, _ = h.HandleMasterBegin(mkvparse.TrackEntryElement, info)
	_ = h.HandleInteger(mkvparse.TrackTypeElement, trackTypeAudio, info)
	_ = h.HandleString(mkvparse.CodecIDElement, "A_AC3", info)
	_ = h.HandleInteger(mkvparse.FlagDefaultElement, 0, info)
	_ = h.HandleString(mkvparse.NameElement, "Surround", info)
	_ = h.HandleMasterEnd(mkvparse.TrackEntryElement, info)

	descend, _ := h.HandleMasterBegin(mkvparse.ClusterElement, info)
	if descend {
		t.Fatalf("clusters must be skipped")
	}

	if h.title != "Segment Title" {
		t.Fatalf("unexpected title %q", h.title)
	}
	got := h.result()
	if len(got) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(got))
	}
	if got[0].Kind != tracks.KindVideo || !got[0].Default || got[0].Language != "und" {
		t.Fatalf("unexpected video %+v", got[0])
	}
	if got[1].SourceID != 1 || got[1].Codec != "AC-3" || got[1].Default || got[1].Language != "eng" || got[1].Name != "Surround" {
		t.Fatalf("unexpected audio %+v", got[1])
	}
}

func TestNewProberRejectsUnknownBackend(t *testing.T) {
	if _, err := NewProber("ffprobe", ""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if _, err := NewProber("native", ""); err != nil {
		t.Fatalf("native backend: %v", err)
	}
}
