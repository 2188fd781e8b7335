package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"chedoparti/pkg/model"
)

type CourtClient struct {
	httpClient *HttpClient
}

func NewCourtClient(baseUrl string) *CourtClient {
	return &CourtClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *CourtClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/courts", body)
}

func (c *CourtClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/courts?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *CourtClient) Search(institutionID, sport string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("institution_id", institutionID)
	if sport != "" {
		q.Set("sport", sport)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/courts/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *CourtClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/courts/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *CourtClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/courts/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *CourtClient) Delete(id string) (*Response, error) {
	path := "/api/v1/courts/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *CourtClient) DecodeCourt(resp *Response) (*model.Court, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode court wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var court model.Court
	if err := json.Unmarshal(wrapper.Data, &court); err != nil {
		return nil, fmt.Errorf("could not decode court json:\n%+v\n%s", resp.ToString(), err)
	}

	return &court, nil
}

func (c *CourtClient) DecodeCourts(resp *Response) ([]*model.Court, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var courts []*model.Court
	if err := json.Unmarshal(wrapper.Data, &courts); err != nil {
		return nil, nil, fmt.Errorf("could not decode court list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return courts, metadata, nil
}
