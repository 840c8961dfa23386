package browse

import (
	"net/url"

	"skyvault/internal/core/datekey"
)

// EstimateRequest builds the form body for a size estimate from a snapshot
// of the form fields
func EstimateRequest(f FormState) url.Values {
	return formValues(f)
}

// DownloadRequest builds the form body for a download. Field set is
// identical to the estimate request
func DownloadRequest(f FormState) url.Values {
	return formValues(f)
}

// DateDownloadRequest builds the query for a single-night download,
// independent of the form state
func DateDownloadRequest(k datekey.Key) url.Values {
	return url.Values{"date": {string(k)}}
}

func formValues(f FormState) url.Values {
	limit := "off"
	if f.LimitClearImages {
		limit = "on"
	}
	return url.Values{
		"start_date":         {f.StartDate},
		"end_date":           {f.EndDate},
		"sidereal_datetime":  {f.ReferenceInstant},
		"limit_clear_images": {limit},
	}
}
