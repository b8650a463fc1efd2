package report

import "snowreport/internal/query"

// Fragment bodies for the portfolio report. Each cleans or derives from the
// COMPANY, PRICE and POSITION warehouse tables; later fragments reference
// earlier aliases by name.

// Filters the COMPANY, PRICE and POSITION tables to remove NULL entries so
// only records with the essential fields are considered.
const cleanCompanySQL = `
    SELECT DISTINCT *
    FROM COMPANY C
    WHERE
        C.ID IS NOT NULL AND
        C.SECTOR_NAME IS NOT NULL AND
        C.TICKER IS NOT NULL
`

const cleanPriceSQL = `
    SELECT DISTINCT P.CLOSE_USD, P.COMPANY_ID, P.DATE
    FROM PRICE P
    WHERE
        P.CLOSE_USD IS NOT NULL AND
        P.DATE IS NOT NULL AND
        P.COMPANY_ID IS NOT NULL
`

const cleanPositionSQL = `
    SELECT DISTINCT *
    FROM POSITION PO
    WHERE
        PO.COMPANY_ID IS NOT NULL AND
        PO.DATE IS NOT NULL AND
        PO.SHARES IS NOT NULL
`

// Joins the cleaned tables and fills missing daily prices with the most
// recent non-null close via a window function.
const closeUSDCleanSQL = `
    SELECT
        C.TICKER,
        C.SECTOR_NAME,
        PO.COMPANY_ID,
        PO.SHARES,
        P.CLOSE_USD,
        PO.DATE,
        LAST_VALUE(P.CLOSE_USD IGNORE NULLS)
        OVER (PARTITION BY PO.COMPANY_ID ORDER BY PO.DATE ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) AS LATEST_CLOSE_USD
    FROM TEMP_CLEAN_COMPANY C
    INNER JOIN TEMP_CLEAN_POSITION PO ON PO.COMPANY_ID = C.ID
    LEFT JOIN TEMP_CLEAN_PRICE P ON P.COMPANY_ID = PO.COMPANY_ID AND P.DATE = PO.DATE
`

// Computes the daily position in USD from shares and the filled close price.
const closeUSDPositionsSQL = `
    SELECT
        TICKER, COMPANY_ID, DATE, SECTOR_NAME,
        ROUND(SHARES * COALESCE(CLOSE_USD, LATEST_CLOSE_USD), 2) AS CLOSE_USD_POSITION
    FROM TEMP_CLOSE_USD_CLEAN
    ORDER BY DATE DESC
`

// Retains only positions from the past year.
const positionsLastYearSQL = `
    SELECT CP.TICKER, CP.COMPANY_ID, CP.SECTOR_NAME, CP.DATE, CP.CLOSE_USD_POSITION
    FROM TEMP_CLOSE_USD_POSITIONS CP
    WHERE DATE >= DATEADD(YEAR, -1, CURRENT_DATE)
`

// Ranks companies by their average position in USD.
const avgPositionsByCompanySQL = `
    SELECT TICKER, ROUND(AVG(CLOSE_USD_POSITION),2) AS AVER, ROW_NUMBER() OVER (ORDER BY AVER DESC) AS rn
    FROM TEMP_CLOSE_USD_POSITIONS_LAST_YEAR
    GROUP BY TICKER
`

const numRowsSQL = `SELECT COUNT(*) AS cnt FROM TEMP_AVG_POSITIONS_BY_COMPANY`

// Extracts only the top 25% of ranked companies.
const rankedCompaniesSQL = `
    SELECT TICKER, AVER
    FROM TEMP_AVG_POSITIONS_BY_COMPANY
    WHERE rn <= (SELECT FLOOR(cnt * 0.25) FROM TEMP_NUMROWS)
`

// Sums the daily USD position of all companies in each sector.
const sectorPositionsSQL = `
    SELECT SECTOR_NAME, DATE, ROUND(SUM(CLOSE_USD_POSITION), 2) AS USD_POSITION
    FROM TEMP_CLOSE_USD_POSITIONS
    GROUP BY SECTOR_NAME, DATE
    ORDER BY DATE DESC
`

// Session store keys for the three report tables.
const (
	KeyDailyPositions  = "daily_positions"
	KeyTopCompanies    = "top_companies"
	KeySectorPositions = "sector_positions"
)

// DailyPositionsPlan computes the daily close position in USD per company.
func DailyPositionsPlan() query.Plan {
	return query.Plan{
		Name:  KeyDailyPositions,
		Title: "Daily Positions (USD)",
		Fragments: []query.Fragment{
			{Alias: "TEMP_CLEAN_COMPANY", Body: cleanCompanySQL},
			{Alias: "TEMP_CLEAN_PRICE", Body: cleanPriceSQL},
			{Alias: "TEMP_CLEAN_POSITION", Body: cleanPositionSQL},
			{Alias: "TEMP_CLOSE_USD_CLEAN", Body: closeUSDCleanSQL},
		},
		Final: closeUSDPositionsSQL,
	}
}

// TopCompaniesPlan extends the daily positions plan to rank companies by
// average position over the last year and keep the top quartile.
func TopCompaniesPlan() query.Plan {
	p := DailyPositionsPlan().Extend(
		[]query.Fragment{
			{Alias: "TEMP_CLOSE_USD_POSITIONS", Body: closeUSDPositionsSQL},
			{Alias: "TEMP_CLOSE_USD_POSITIONS_LAST_YEAR", Body: positionsLastYearSQL},
			{Alias: "TEMP_AVG_POSITIONS_BY_COMPANY", Body: avgPositionsByCompanySQL},
			{Alias: "TEMP_NUMROWS", Body: numRowsSQL},
		},
		rankedCompaniesSQL,
	)
	p.Name = KeyTopCompanies
	p.Title = "Top 25% Companies by Average Position (Last Year)"
	return p
}

// SectorPositionsPlan extends the daily positions plan to aggregate the
// daily USD position per sector.
func SectorPositionsPlan() query.Plan {
	p := DailyPositionsPlan().Extend(
		[]query.Fragment{
			{Alias: "TEMP_CLOSE_USD_POSITIONS", Body: closeUSDPositionsSQL},
		},
		sectorPositionsSQL,
	)
	p.Name = KeySectorPositions
	p.Title = "Daily Sector Positions (USD)"
	return p
}
