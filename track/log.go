package track

import (
	log "github.com/sirupsen/logrus"
)

var logger log.FieldLogger = log.StandardLogger()

// SetLogger replaces the logger used for track diagnostics. A nil logger restores the logrus standard logger.
func SetLogger(l log.FieldLogger) {
	if l == nil {
		l = log.StandardLogger()
	}
	logger = l
}

func (t *Track) logFields() log.Fields {
	fields := log.Fields{"track": t.title, "keys": len(t.times)}
	if t.hasGlobalSeq {
		fields["global_seq"] = t.globalSeqID
	}

	return fields
}
