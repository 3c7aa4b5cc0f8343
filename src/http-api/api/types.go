package api

import (
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	ErrorResponse  = types.ErrorResponse
	HealthResponse = types.HealthResponse
)

type BetweenStationsParams struct {
	From string `query:"from" validate:"required"`
	To   string `query:"to" validate:"required"`
}

type TrainsOnDateParams struct {
	From string             `query:"from" validate:"required"`
	To   string             `query:"to" validate:"required"`
	Date openapi_types.Date `query:"date"`
}

type TrainParams struct {
	TrainNo string `query:"trainNo" validate:"required"`
}

type FareParams struct {
	Train        string `query:"train" validate:"required"`
	From         string `query:"from" validate:"required"`
	To           string `query:"to" validate:"required"`
	Adult        int    `query:"adult" validate:"gte=0"`
	Child        int    `query:"child" validate:"gte=0"`
	SeniorFemale int    `query:"sfemale" validate:"gte=0"`
	SeniorMale   int    `query:"smale" validate:"gte=0"`
}

type PnrParams struct {
	Pnr string `query:"pnr" validate:"required,alphanum"`
}

type RecentParams struct {
	Limit int `query:"limit" validate:"gte=1,lte=100"`
}
