package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

func TestRender_SnowflakeQueryTemplate(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceSnowflake,
		Config: map[string]string{
			"warehouse": "RISK_WH",
			"database":  "RISK",
			"query":     "SELECT * FROM CVAR WHERE {filter[0]:port_no} AND {filter[1]:currency} AND {filter[2]:ssm_id}",
		},
		ReadOnly: true,
	}
	m := moniker.MustParse("moniker://risk.cvar/758-A/ALL/B0YHY8V7")

	desc, err := Render(b, m, "758-A/ALL/B0YHY8V7")
	require.NoError(t, err)

	assert.Equal(t, SourceSnowflake, desc.SourceType)
	assert.Equal(t, "SELECT * FROM CVAR WHERE port_no = '758-A' AND 1=1 AND ssm_id = 'B0YHY8V7'", desc.Query)
	assert.Equal(t, "RISK_WH", desc.Connection["warehouse"])
	assert.NotContains(t, desc.Connection, "query")
	assert.True(t, desc.ReadOnly)
}

func TestRender_SQLTableOnly(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceOracle,
		Config:     map[string]string{"table": "POSITIONS"},
	}
	desc, err := Render(b, moniker.MustParse("a/b"), "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM POSITIONS", desc.Query)
}

func TestRender_SQLMissingQueryAndTable(t *testing.T) {
	b := &SourceBinding{SourceType: SourceSnowflake, Config: map[string]string{}}
	_, err := Render(b, moniker.MustParse("a/b"), "")
	assert.Error(t, err)
}

func TestRender_OracleVersionDate(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceOracle,
		Config:     map[string]string{"query": "SELECT * FROM T WHERE asof = {version_date}"},
	}
	desc, err := Render(b, moniker.MustParse("a/b@20260115"), "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM T WHERE asof = TO_DATE('20260115', 'YYYYMMDD')", desc.Query)
}

func TestRender_REST(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceREST,
		Config: map[string]string{
			"url": "https://api.example.com/securities/{segments[0]}?v={version}",
		},
	}
	m := moniker.MustParse("reference.security/US0378331005@latest")

	desc, err := Render(b, m, "US0378331005")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/securities/US0378331005?v=latest", desc.Connection["url"])
	assert.Equal(t, "GET", desc.Connection["method"])
	assert.Empty(t, desc.Query)
}

func TestRender_RESTMissingURL(t *testing.T) {
	b := &SourceBinding{SourceType: SourceREST, Config: map[string]string{"method": "POST"}}
	_, err := Render(b, moniker.MustParse("a/b"), "")
	assert.Error(t, err)
}

func TestRender_ExcelFilePattern(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceExcel,
		Config: map[string]string{
			"file":  "/data/{segments[0]}/positions_{version}.xlsx",
			"sheet": "Sheet1",
		},
	}
	desc, err := Render(b, moniker.MustParse("funds/alpha@20260115"), "alpha")
	require.NoError(t, err)
	assert.Equal(t, "/data/alpha/positions_20260115.xlsx", desc.Connection["file"])
	assert.Equal(t, "Sheet1", desc.Connection["sheet"])
}

func TestRender_ExcelMissingFile(t *testing.T) {
	b := &SourceBinding{SourceType: SourceStatic, Config: map[string]string{"sheet": "x"}}
	_, err := Render(b, moniker.MustParse("a/b"), "")
	assert.Error(t, err)
}

func TestRender_Bloomberg(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceBloomberg,
		Config: map[string]string{
			"tickers": "{segments[0]} Equity",
			"fields":  "PX_LAST",
		},
	}
	desc, err := Render(b, moniker.MustParse("equities/AAPL"), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL Equity", desc.Connection["tickers"])
}

func TestRender_UnknownTypePassesThrough(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceType("homegrown"),
		Config: map[string]string{
			"endpoint": "svc://{path}",
			"mode":     "batch",
		},
	}
	desc, err := Render(b, moniker.MustParse("a/b/c"), "")
	require.NoError(t, err)
	assert.Equal(t, "svc://a/b/c", desc.Connection["endpoint"])
	assert.Equal(t, "batch", desc.Connection["mode"])
}

func TestRender_CarriesParamsAndSchema(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceREST,
		Config:     map[string]string{"url": "https://x/{path}"},
		Schema:     map[string]string{"price": "float"},
	}
	m := moniker.MustParse("a/b?fmt=csv&limit=10")

	desc, err := Render(b, m, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fmt": "csv", "limit": "10"}, desc.Params)
	assert.Equal(t, map[string]string{"price": "float"}, desc.Schema)
}

func TestRender_DoesNotMutateBinding(t *testing.T) {
	b := &SourceBinding{
		SourceType: SourceREST,
		Config:     map[string]string{"url": "https://x/{path}"},
	}
	_, err := Render(b, moniker.MustParse("a/b"), "")
	require.NoError(t, err)
	assert.Equal(t, "https://x/{path}", b.Config["url"])
}
