package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"chedoparti/pkg/model"
)

type OpenMatchClient struct {
	httpClient *HttpClient
}

func NewOpenMatchClient(baseUrl string) *OpenMatchClient {
	return &OpenMatchClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *OpenMatchClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/open-matches", body)
}

func (c *OpenMatchClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/open-matches?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *OpenMatchClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/open-matches/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *OpenMatchClient) Join(id string, body any) (*Response, error) {
	path := "/api/v1/open-matches/id/" + url.PathEscape(id) + "/join"
	return c.httpClient.POST(path, body)
}

func (c *OpenMatchClient) Leave(id string, body any) (*Response, error) {
	path := "/api/v1/open-matches/id/" + url.PathEscape(id) + "/leave"
	return c.httpClient.POST(path, body)
}

func (c *OpenMatchClient) Cancel(id string) (*Response, error) {
	path := "/api/v1/open-matches/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *OpenMatchClient) DecodeOpenMatch(resp *Response) (*model.OpenMatch, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode open match wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var match model.OpenMatch
	if err := json.Unmarshal(wrapper.Data, &match); err != nil {
		return nil, fmt.Errorf("could not decode open match json:\n%+v\n%s", resp.ToString(), err)
	}

	return &match, nil
}
