package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/contract"
	"github.com/reoring/jsontools/contractcheck"
	"github.com/reoring/jsontools/enumreg"
	"github.com/reoring/jsontools/errclass"
	"github.com/reoring/jsontools/inputgate"
	"github.com/reoring/jsontools/ruletrace"
	"github.com/reoring/jsontools/schemadiff"
	"github.com/reoring/jsontools/schemamap"
	"github.com/reoring/jsontools/schemaval"
	"github.com/reoring/jsontools/textnorm"
	"github.com/reoring/jsontools/verify"
)

// contracts is the discovery order served by /mcp and /contracts.
var contracts = []contract.Contract{
	verify.ToolContract,
	textnorm.ToolContract,
	schemaval.ToolContract,
	schemamap.ToolContract,
	inputgate.ToolContract,
	errclass.ToolContract,
	contractcheck.ToolContract,
	ruletrace.ToolContract,
	schemadiff.ToolContract,
	enumreg.ToolContract,
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"message":       "server is running",
			"tool_manifest": "/mcp",
			"contracts":     "/contracts",
		})
	})

	r.GET("/mcp", func(c *gin.Context) {
		tools := make([]contract.Summary, 0, len(contracts))
		for _, ct := range contracts {
			tools = append(tools, ct.Summarize())
		}
		c.JSON(http.StatusOK, gin.H{"tools": tools})
	})

	r.GET("/contracts", func(c *gin.Context) {
		summaries := make([]contract.Summary, 0, len(contracts))
		for _, ct := range contracts {
			summaries = append(summaries, ct.Summarize())
		}
		c.JSON(http.StatusOK, gin.H{"contracts": summaries})
	})

	r.GET("/contracts/:name", func(c *gin.Context) {
		name := c.Param("name")
		for _, ct := range contracts {
			if ct.Name == name {
				c.JSON(http.StatusOK, ct)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": jsontools.NewError("CAPABILITY_UNKNOWN", "Capability not found.")})
	})

	r.POST("/tools/verify_test", handle(verify.Echo))
	r.POST("/tools/text_normalize", handleTextNormalize)
	r.POST("/tools/schema_validate", handle(schemaval.Validate))
	r.POST("/tools/schema_map", handle(schemamap.Apply))
	r.POST("/tools/input_gate", handle(inputgate.Gate))
	r.POST("/tools/structured_error", handle(errclass.Classify))
	r.POST("/tools/capability_contract", handle(contractcheck.Check))
	r.POST("/tools/rule_trace", handle(ruletrace.Build))
	r.POST("/tools/schema_diff", handle(schemadiff.Diff))
	r.POST("/tools/enum_registry", handle(enumreg.Check))
}

// handle adapts an engine function into a gin handler: strict decode,
// invoke, write. A structural failure maps to HTTP 400 with the envelope;
// everything else is the engine's own output.
func handle[In, Out any](run func(In) (Out, *jsontools.Error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}
		var in In
		if err := jsontools.DecodeStrict(body, &in); err != nil {
			writeError(c, jsontools.NewError(jsontools.CodeInputInvalid, "Request body must match the tool schema."))
			return
		}
		out, envErr := run(in)
		if envErr != nil {
			writeError(c, envErr)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// handleTextNormalize uses the engine's own parser because option defaults
// depend on which fields the request carries.
func handleTextNormalize(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, envErr := textnorm.Parse(body)
	if envErr != nil {
		writeError(c, envErr)
		return
	}
	out, envErr := textnorm.Normalize(in)
	if envErr != nil {
		writeError(c, envErr)
		return
	}
	c.JSON(http.StatusOK, out)
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, jsontools.NewError(jsontools.CodeInputInvalid, "Request body unreadable or too large."))
		return nil, false
	}
	return body, true
}

func writeError(c *gin.Context, envErr *jsontools.Error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": envErr})
}
