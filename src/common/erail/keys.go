package erail

import (
	"fmt"
	"strings"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

func BuildStationPairKey(from, to string) string {
	return fmt.Sprintf("erail:between:%s:%s", strings.ToUpper(from), strings.ToUpper(to))
}

func BuildTrainKey(trainNo string) string {
	return fmt.Sprintf("erail:train:%s", trainNo)
}

func BuildRouteKey(trainID string) string {
	return fmt.Sprintf("erail:route:%s", trainID)
}

func BuildFareKey(q types.FareQuery) string {
	return fmt.Sprintf("erail:fare:%s:%s:%s:%d:%d:%d:%d",
		q.TrainNo, strings.ToUpper(q.From), strings.ToUpper(q.To), q.Adult, q.Child, q.SeniorFemale, q.SeniorMale)
}
