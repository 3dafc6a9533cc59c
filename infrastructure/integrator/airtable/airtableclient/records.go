package airtableclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
)

// ListRecords follows the offset cursor until every page has been read.
func (c *AirtableClient) ListRecords(ctx context.Context, baseID, table string) ([]airtabledomain.Record, error) {
	records := make([]airtabledomain.Record, 0)
	offset := ""

	for {
		query := url.Values{}
		query.Set("pageSize", strconv.Itoa(maxPageSize))
		if offset != "" {
			query.Set("offset", offset)
		}

		var page airtabledomain.ListResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(baseID, table)+"?"+query.Encode(), nil, &page); err != nil {
			return nil, errors.Wrapf(err, "error listing %s", table)
		}

		records = append(records, page.Records...)

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *AirtableClient) GetRecord(ctx context.Context, baseID, table, recordID string) (*airtabledomain.Record, error) {
	var record airtabledomain.Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(baseID, table, recordID), nil, &record); err != nil {
		return nil, errors.Wrapf(err, "error fetching %s record %s", table, recordID)
	}
	return &record, nil
}

func (c *AirtableClient) CreateRecord(ctx context.Context, baseID, table string, fields any) (*airtabledomain.Record, error) {
	var record airtabledomain.Record
	body := airtabledomain.WriteRequest{Fields: fields, Typecast: true}
	if err := c.do(ctx, http.MethodPost, c.tableURL(baseID, table), body, &record); err != nil {
		return nil, errors.Wrapf(err, "error creating %s record", table)
	}
	return &record, nil
}

// UpdateRecord patches only the given fields.
func (c *AirtableClient) UpdateRecord(ctx context.Context, baseID, table, recordID string, fields any) (*airtabledomain.Record, error) {
	var record airtabledomain.Record
	body := airtabledomain.WriteRequest{Fields: fields, Typecast: true}
	if err := c.do(ctx, http.MethodPatch, c.tableURL(baseID, table, recordID), body, &record); err != nil {
		return nil, errors.Wrapf(err, "error updating %s record %s", table, recordID)
	}
	return &record, nil
}

func (c *AirtableClient) DeleteRecord(ctx context.Context, baseID, table, recordID string) error {
	var resp airtabledomain.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, c.tableURL(baseID, table, recordID), nil, &resp); err != nil {
		return errors.Wrapf(err, "error deleting %s record %s", table, recordID)
	}

	if !resp.Deleted {
		return errors.Errorf("%s record %s was not deleted", table, recordID)
	}

	return nil
}
