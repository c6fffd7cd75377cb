package report

import (
	"strings"
	"time"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ParseSaleFilter convierte los días inclusivos del query string en un rango
// semiabierto de tiempo en loc.
func ParseSaleFilter(in dto.SaleListFilter, loc *time.Location) (repository.SaleFilter, error) {
	var out repository.SaleFilter
	v := domain.NewValidationError()
	if s := strings.TrimSpace(in.StartDate); s != "" {
		from, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			v.Add("start_date", "Enter a valid date (YYYY-MM-DD).")
		} else {
			out.From = &from
		}
	}
	if s := strings.TrimSpace(in.EndDate); s != "" {
		end, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			v.Add("end_date", "Enter a valid date (YYYY-MM-DD).")
		} else {
			to := end.AddDate(0, 0, 1)
			out.To = &to
		}
	}
	return out, v.OrNil()
}
