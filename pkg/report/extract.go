package report

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/model"
)

// extractGeneral pulls the flat inspection metadata out of the payload. Nil
// when the payload carries none of the known keys.
func extractGeneral(data formdata.FormData) *model.GeneralInformation {
	if len(data) == 0 {
		return nil
	}

	text := func(key string) string {
		value, ok := data.Resolve(key)
		if !ok {
			return ""
		}
		// A structured company object belongs to branding, not the header.
		if _, isMap := value.(map[string]any); isMap {
			return ""
		}
		return strings.TrimSpace(formdata.Stringify(value))
	}

	g := model.GeneralInformation{
		Company:        text("company"),
		PropertyName:   text("propertyName"),
		PropertyID:     text("propertyId"),
		Address:        text("address"),
		BuildingType:   text("buildingType"),
		FloorArea:      text("floorArea"),
		InspectionDate: text("inspectionDate"),
		InspectionType: text("inspectionType"),
		NextInspection: text("nextInspection"),
		InspectorName:  text("inspectorName"),
		LicenseNumber:  text("licenseNumber"),
		Temperature:    text("temperature"),
		Humidity:       text("humidity"),
		Notes:          text("notes"),
	}
	if g.Empty() {
		return nil
	}
	return &g
}

// extractSignatures reads the payload's signature block. Accepts both the
// structured {inspector, client} object under "signatures" and a bare
// inspector signature under "signature".
func extractSignatures(data formdata.FormData) *model.SignatureData {
	if raw, ok := data["signatures"].(map[string]any); ok {
		sigs := model.SignatureData{
			Inspector: signatureEntry(raw["inspector"]),
			Client:    signatureEntry(raw["client"]),
		}
		if !sigs.Empty() {
			return &sigs
		}
	}

	if raw, ok := data["signature"]; ok {
		entry := signatureEntry(raw)
		if !entry.Empty() {
			return &model.SignatureData{Inspector: entry}
		}
	}
	return nil
}

func signatureEntry(raw any) model.SignatureEntry {
	switch v := raw.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(v), "data:image/") {
			return model.SignatureEntry{Image: v}
		}
		return model.SignatureEntry{Name: strings.TrimSpace(v)}
	case map[string]any:
		entry := model.SignatureEntry{}
		if s, ok := v["name"].(string); ok {
			entry.Name = strings.TrimSpace(s)
		}
		if s, ok := v["date"].(string); ok {
			entry.Date = strings.TrimSpace(s)
		}
		for _, key := range []string{"image", "data", "signature"} {
			if s, ok := v[key].(string); ok && strings.HasPrefix(strings.TrimSpace(s), "data:image/") {
				entry.Image = s
				break
			}
		}
		return entry
	default:
		return model.SignatureEntry{}
	}
}

// extractCompany decodes a structured company object stored under "company".
// A bare string there is the client company name and belongs to the general
// information block instead.
func extractCompany(data formdata.FormData) *model.CompanyData {
	raw, ok := data["company"].(map[string]any)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var company model.CompanyData
	if err := json.Unmarshal(payload, &company); err != nil {
		return nil
	}
	if strings.TrimSpace(company.Name) == "" {
		return nil
	}
	return &company
}
