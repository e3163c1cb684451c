// Package api
package api

import (
	"strconv"

	"github.com/bxcodec/faker/v3"
	"github.com/labstack/echo"

	"github.com/govlens/governance-backend/types"
	"github.com/govlens/governance-backend/utils"
)

// SimulateHolders returns a fake holder page so frontend work does not need
// seeded storage.
func (s *Server) SimulateHolders(c echo.Context) error {
	var page, limit int
	var err error
	pageParams := c.QueryParam("page")
	limitParams := c.QueryParam("limit")
	page, err = strconv.Atoi(pageParams)
	if err != nil {
		page = 0
	}
	limit, err = strconv.Atoi(limitParams)
	if err != nil {
		limit = 20
	}

	var holders []*types.Holder
	for i := 0; i < limit; i++ {
		holder := &types.Holder{}
		if err := faker.FakeData(holder); err != nil {
			return err
		}
		holder.BalanceFloat = utils.StrToFloat64(holder.Balance)
		holders = append(holders, holder)
	}

	return OK.SetData(PagingResponse{
		Page:  page,
		Limit: limit,
		Total: uint64(limit * 15),
		Data:  holders,
	}).Build(c)
}
