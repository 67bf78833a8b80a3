package usecase

const (
	// rateScale is the number of fractional digits an exchange rate is
	// rounded down to.
	rateScale = 4

	// defaultPageSize and maxPageSize bound operation listings.
	defaultPageSize = 20
	maxPageSize     = 100
)
