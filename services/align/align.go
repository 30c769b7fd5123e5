package align

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"

	"github.com/reelkit/media-assembly/common"
	"github.com/reelkit/media-assembly/environment"
	"github.com/reelkit/media-assembly/utils"
)

var ErrAlignment = merry.Sentinel("alignment failed")

var (
	errNoInputFile = fmt.Errorf("no input file")
	errNoOutput    = fmt.Errorf("no output folder")
)

type AlignRequest struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	Language   string `json:"language"`
	OutputPath string `json:"output_path"`
	Priority   int    `json:"priority,omitempty"`
}

type AlignJob struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Language   string `json:"language"`
	OutputPath string `json:"output_path"`
	Progress   int    `json:"progress"`
	Status     string `json:"status"`
	Result     string `json:"result"`
	Duration   string `json:"duration"`
	Priority   int    `json:"priority"`
}

// Languages the alignment models cover. Anything else falls back to "auto",
// which lets the service pick a model from the audio itself.
var alignSupportedLanguages = map[string]bool{
	"en": true,
	"fr": true,
	"de": true,
	"es": true,
	"it": true,
	"pt": true,
	"nl": true,
	"pl": true,
	"cs": true,
	"ru": true,
	"uk": true,
	"tr": true,
	"ar": true,
	"he": true,
	"el": true,
	"da": true,
	"sv": true,
	"fi": true,
	"hu": true,
	"ro": true,
	"sk": true,
	"sl": true,
	"hr": true,
	"no": true,
	"nn": true,
	"ja": true,
	"ko": true,
	"zh": true,
	"hi": true,
	"vi": true,
	"fa": true,
	"ca": true,
	"eu": true,
	"gl": true,
}

func normalizeAlignmentLanguage(language string) string {
	language = strings.ToLower(language)

	if language == "auto" || language == "" {
		return "auto"
	}

	if ok := alignSupportedLanguages[language]; ok {
		return language
	}

	return "auto"
}

// DoAlign submits a forced-alignment job to the speech service and polls it
// to completion. The service writes a word-timestamp JSON document to
// outputFolder and reports its path in the job result. heartbeat, when set,
// fires on every poll so long jobs can report liveness to the caller.
func DoAlign(
	ctx context.Context,
	inputFile string,
	scriptText string,
	outputFolder string,
	language string,
	heartbeat func(),
) (*AlignJob, error) {

	if inputFile == "" {
		return nil, errNoInputFile
	}

	if outputFolder == "" {
		return nil, errNoOutput
	}

	restyClient := resty.New()
	restyClient.RetryCount = 3
	restyClient.RetryWaitTime = 10 * time.Second
	restyClient.RetryMaxWaitTime = 30 * time.Second

	baseURL := environment.GetSpeechServiceBaseURL()
	language = normalizeAlignmentLanguage(language)

	resp, err := restyClient.R().EnableTrace().
		SetBody(AlignRequest{
			Path:       inputFile,
			Text:       scriptText,
			Language:   language,
			OutputPath: outputFolder,
		}).
		SetResult(&AlignJob{}).
		Post(fmt.Sprintf("%s/alignment/job", baseURL))

	if err != nil {
		return nil, err
	}

	job := resp.Result().(*AlignJob)

	// Periodically check the status of the job
	for {
		if heartbeat != nil {
			heartbeat()
		}
		resp, err := restyClient.R().EnableTrace().
			SetResult(&AlignJob{}).
			Get(fmt.Sprintf("%s/alignment/job/%s", baseURL, job.ID))

		if err != nil {
			return nil, err
		}

		job := resp.Result().(*AlignJob)
		switch job.Status {
		case "COMPLETED":
			return job, nil
		case "FAILED":
			return job, merry.Wrap(ErrAlignment, merry.AppendMessage(job.Result))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Second):
		}
	}
}

type alignmentDocument struct {
	Text     string                 `json:"text"`
	Words    []common.WordTimestamp `json:"words"`
	Language string                 `json:"language"`
}

// ReadAlignmentFile loads the word document the speech service wrote and
// normalizes it into a Transcript. Returns ErrAlignment if the document holds
// no words at all.
func ReadAlignmentFile(path string) (*common.Transcript, error) {
	doc := &alignmentDocument{}
	err := utils.JsonFileToStruct(path, doc)
	if err != nil {
		return nil, merry.Wrap(ErrAlignment, merry.AppendMessage(err.Error()))
	}

	if len(doc.Words) == 0 {
		return nil, merry.Wrap(ErrAlignment, merry.AppendMessage("document contains no aligned words"))
	}

	return &common.Transcript{
		Words:    doc.Words,
		Language: doc.Language,
	}, nil
}
