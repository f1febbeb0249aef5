package report

import (
	"fmt"
	"time"

	"github.com/goblimey/go-tools/logger"
	"github.com/goblimey/nmeasim/engine"
	reporter "github.com/goblimey/go-tools/statusreporter"
)

const reportFormat = `nmeasim status at %s

Engine:
  ticks           %d
  late ticks      %d
  GGA sentences   %d
  RMC sentences   %d
  AIVDM sentences %d
  encode errors   %d

Recent sentences
%s
`

// Feed satisfies go-tools/statusreporter's ReportFeedT interface, reporting
// engine.Snapshot counters and recently emitted NMEA/AIS sentences as a
// plain-text status page.
type Feed struct {
	log    *logger.LoggerT
	engine *engine.Engine
	recent *RingBuffer
}

// This is a compile-time check that Feed implements statusreporter.ReportFeedT.
var _ reporter.ReportFeedT = (*Feed)(nil)

// NewFeed creates a status feed backed by e's live stats and recent's
// buffered sentences.
func NewFeed(log *logger.LoggerT, e *engine.Engine, recent *RingBuffer) *Feed {
	return &Feed{log: log, engine: e, recent: recent}
}

// SetLogLevel satisfies the ReportFeedT interface.
func (f *Feed) SetLogLevel(level uint8) {
	f.log.SetLogLevel(int(level))
}

// Status satisfies the ReportFeedT interface, rendering the engine's
// current counters and the most recently emitted sentences as plain text.
func (f *Feed) Status() []byte {
	snap := f.engine.Stats()

	recentText := ""
	for _, s := range f.recent.Recent() {
		recentText += s + "\n"
	}

	body := fmt.Sprintf(reportFormat,
		time.Now().Format("Mon Jan _2 15:04:05 2006"),
		snap.Ticks, snap.LateTicks,
		snap.SentencesGGA, snap.SentencesRMC, snap.SentencesAIVDM,
		snap.EncodeErrors,
		recentText,
	)
	return []byte(body)
}

// StartHTTP starts the blocking HTTP status service on host:port in a
// goroutine.
func StartHTTP(log *logger.LoggerT, feed *Feed, host string, port int) {
	rep := reporter.MakeReporter(feed, host, port)
	rep.SetUseTextTemplates(true)
	go rep.StartService()
}
