package mkvinfo

import (
	"fmt"
	"strings"

	"github.com/remko/go-mkvparse"

	"mkvnorm/internal/tracks"
)

// Matroska TrackType values.
const (
	trackTypeVideo    = 1
	trackTypeAudio    = 2
	trackTypeSubtitle = 17
)

// ReadNative parses the Segment Info and Tracks elements of path directly.
// Track ids follow TrackEntry order, which is how mkvmerge numbers them.
func ReadNative(path string) (Result, error) {
	h := newTrackHandler()
	if err := mkvparse.ParsePath(path, h); err != nil {
		return Result{}, fmt.Errorf("matroska parse: %w", err)
	}
	return Result{Path: path, Title: h.title, Tracks: h.result()}, nil
}

type entry struct {
	trackType int64
	codecID   string
	language  string
	name      string
	isDefault bool
	forced    bool
}

type trackHandler struct {
	mkvparse.DefaultHandler

	title   string
	entries []entry
	current *entry
}

func newTrackHandler() *trackHandler {
	return &trackHandler{}
}

func (h *trackHandler) HandleMasterBegin(id mkvparse.ElementID, _ mkvparse.ElementInfo) (bool, error) {
	switch id {
	case mkvparse.ClusterElement, mkvparse.CuesElement, mkvparse.AttachmentsElement:
		return false, nil
	case mkvparse.TrackEntryElement:
		// Matroska defaults: FlagDefault=1, Language=eng.
		h.current = &entry{isDefault: true, language: "eng"}
	}
	return true, nil
}

func (h *trackHandler) HandleMasterEnd(id mkvparse.ElementID, _ mkvparse.ElementInfo) error {
	if id == mkvparse.TrackEntryElement && h.current != nil {
		h.entries = append(h.entries, *h.current)
		h.current = nil
	}
	return nil
}

func (h *trackHandler) HandleString(id mkvparse.ElementID, value string, _ mkvparse.ElementInfo) error {
	if id == mkvparse.TitleElement && h.current == nil {
		h.title = value
		return nil
	}
	if h.current == nil {
		return nil
	}
	switch id {
	case mkvparse.CodecIDElement:
		h.current.codecID = value
	case mkvparse.LanguageElement:
		h.current.language = value
	case mkvparse.NameElement:
		h.current.name = value
	}
	return nil
}

func (h *trackHandler) HandleInteger(id mkvparse.ElementID, value int64, _ mkvparse.ElementInfo) error {
	if h.current == nil {
		return nil
	}
	switch id {
	case mkvparse.TrackTypeElement:
		h.current.trackType = value
	case mkvparse.FlagDefaultElement:
		h.current.isDefault = value != 0
	case mkvparse.FlagForcedElement:
		h.current.forced = value != 0
	}
	return nil
}

func (h *trackHandler) result() []tracks.Track {
	out := make([]tracks.Track, 0, len(h.entries))
	for i, e := range h.entries {
		kind, ok := kindForType(e.trackType)
		if !ok {
			continue
		}
		out = append(out, tracks.Track{
			SourceID: i,
			Kind:     kind,
			Language: normalizeLanguage(e.language),
			Codec:    CodecName(e.codecID),
			Name:     e.name,
			Default:  e.isDefault,
			Forced:   e.forced,
		})
	}
	return out
}

func kindForType(value int64) (tracks.Kind, bool) {
	switch value {
	case trackTypeVideo:
		return tracks.KindVideo, true
	case trackTypeAudio:
		return tracks.KindAudio, true
	case trackTypeSubtitle:
		return tracks.KindSubtitles, true
	default:
		return "", false
	}
}

var codecNames = []struct {
	prefix string
	name   string
}{
	{"V_MPEG4/ISO/AVC", "AVC/H.264/MPEG-4p10"},
	{"V_MPEGH/ISO/HEVC", "HEVC/H.265/MPEG-H"},
	{"V_AV1", "AV1"},
	{"V_VP9", "VP9"},
	{"V_MPEG2", "MPEG-1/2"},
	{"A_AAC", "AAC"},
	{"A_EAC3", "E-AC-3"},
	{"A_AC3", "AC-3"},
	{"A_DTS", "DTS"},
	{"A_TRUEHD", "TrueHD"},
	{"A_FLAC", "FLAC"},
	{"A_OPUS", "Opus"},
	{"A_VORBIS", "Vorbis"},
	{"A_MPEG/L3", "MP3"},
	{"S_TEXT/UTF8", "SubRip/SRT"},
	{"S_TEXT/ASS", "SubStationAlpha"},
	{"S_TEXT/SSA", "SubStationAlpha"},
	{"S_HDMV/PGS", "HDMV PGS"},
	{"S_VOBSUB", "VobSub"},
}

// CodecName maps a Matroska CodecID onto the name mkvmerge reports for it.
// Unknown ids are returned unchanged.
func CodecName(codecID string) string {
	id := strings.ToUpper(strings.TrimSpace(codecID))
	for _, c := range codecNames {
		if strings.HasPrefix(id, c.prefix) {
			return c.name
		}
	}
	return codecID
}
