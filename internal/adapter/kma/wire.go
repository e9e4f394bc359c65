package kma

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the response wrapper shared by every KMA OpenAPI service.
type envelope struct {
	Response struct {
		Header wireHeader `json:"header"`
		Body   wireBody   `json:"body"`
	} `json:"response"`
}

type wireHeader struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

type wireBody struct {
	DataType   string    `json:"dataType"`
	Items      wireItems `json:"items"`
	NumOfRows  int       `json:"numOfRows"`
	PageNo     int       `json:"pageNo"`
	TotalCount int       `json:"totalCount"`
}

type wireItems struct {
	Item itemList `json:"item"`
}

// itemList tolerates both shapes KMA uses for items.item: an array for the
// forecast services, a bare object for single-row responses (mid-term,
// warnings).
type itemList []wireItem

func (l *itemList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var arr []wireItem
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}

	var single wireItem
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = itemList{single}
	return nil
}

// wireItem is the union of the row fields across all consumed endpoints.
// Forecast rows fill the category fields; mid-term fills stnId/tmFc/wfSv;
// warnings fill tmFc/tmEf/t6/t7/other.
type wireItem struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	ObsrValue string `json:"obsrValue"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`

	StnID flexString `json:"stnId"`
	TmFc  flexString `json:"tmFc"`
	WfSv  string     `json:"wfSv"`

	TmEf  flexString `json:"tmEf"`
	T6    string     `json:"t6"`
	T7    string     `json:"t7"`
	Other string     `json:"other"`
}

// flexString accepts both JSON strings and numbers; the warning service
// returns tmFc/tmEf as bare numbers while other services quote them.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("neither string nor number: %w", err)
	}
	*s = flexString(n.String())
	return nil
}
