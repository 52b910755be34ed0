// Package verify decides whether a container is eligible for normalization
// before any track is touched.
package verify

import (
	"fmt"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/tracks"
)

// Skip codes identify which rule rejected a job.
const (
	CodeNoSubtitles       = "no_subtitles"
	CodeDuplicateLanguage = "duplicate_audio_language"
	CodeUnexpectedCodec   = "unexpected_codec"
)

// Decision is the gate's tagged result: accepted, or skipped with a reason.
type Decision struct {
	Accepted bool
	Code     string
	Reason   string
}

// Accept returns an accepting decision.
func Accept() Decision { return Decision{Accepted: true} }

// Skip returns a rejecting decision.
func Skip(code, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}

// Err returns nil for accepted jobs and an error wrapping outcome.ErrSkipped
// otherwise.
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return outcome.Wrap(outcome.ErrSkipped, "verify", d.Code, d.Reason, nil)
}

func (d Decision) String() string {
	if d.Accepted {
		return "accept"
	}
	return fmt.Sprintf("skip(%s)", d.Reason)
}

type rule func(tracks.MediaJob) (Decision, bool)

// rules run in order; the first rejection wins.
var rules = []rule{
	requireSubtitleSidecars,
	rejectDuplicateAudioLanguages,
	requireProfileCodec,
}

// Evaluate applies the rejection rules to job.
func Evaluate(job tracks.MediaJob) Decision {
	for _, r := range rules {
		if d, rejected := r(job); rejected {
			return d
		}
	}
	return Accept()
}

func requireSubtitleSidecars(job tracks.MediaJob) (Decision, bool) {
	if job.HasSidecar(tracks.KindSubtitles) {
		return Decision{}, false
	}
	return Skip(CodeNoSubtitles, "no subtitles found"), true
}

func rejectDuplicateAudioLanguages(job tracks.MediaJob) (Decision, bool) {
	if job.Container == nil {
		return Decision{}, false
	}
	seen := make(map[string]struct{})
	for _, t := range job.Container.ByKind(tracks.KindAudio) {
		lang := t.Lang()
		if _, dup := seen[lang]; dup {
			return Skip(CodeDuplicateLanguage, "duplicate audio language "+lang), true
		}
		seen[lang] = struct{}{}
	}
	return Decision{}, false
}

func requireProfileCodec(job tracks.MediaJob) (Decision, bool) {
	required := job.Profile.RequiredAudioCodec
	if required == "" || job.Container == nil {
		return Decision{}, false
	}
	for _, t := range job.Container.ByKind(tracks.KindAudio) {
		if t.Codec != required {
			return Skip(CodeUnexpectedCodec, "unexpected codec "+t.Codec), true
		}
	}
	return Decision{}, false
}
