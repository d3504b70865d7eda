// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soapRequest(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>` + body + `</soap:Body>
</soap:Envelope>`
}

// parsed form of a SOAP response, namespace-aware
type soapResult struct {
	Body struct {
		Response *struct {
			Result string `xml:"CompareVersionsResult"`
		} `xml:"http://tempuri.org/ CompareVersionsResponse"`
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

func TestHandleCompareVersionsGET(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/VersionChecker.asmx/CompareVersions?version1=1.2&version2=1.2.1", nil)
	w := httptest.NewRecorder()

	h.HandleCompareVersions(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t,
		xml.Header+`<string xmlns="http://tempuri.org/">before</string>`,
		w.Body.String())
}

func TestHandleCompareVersionsPOSTForm(t *testing.T) {
	h := NewHandler()

	form := url.Values{"version1": {"2.0"}, "version2": {"1.9.9"}}
	req := httptest.NewRequest(http.MethodPost, "/VersionChecker.asmx/CompareVersions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.HandleCompareVersions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var doc xmlString
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "after", doc.Value)
}

func TestHandleCompareVersionsErrors(t *testing.T) {
	h := NewHandler()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"malformed is a result", http.MethodGet, "/x?version1=a&version2=1", http.StatusOK, ">error</string>"},
		{"missing version1", http.MethodGet, "/x?version2=1", http.StatusBadRequest, "Missing parameter: version1."},
		{"missing version2", http.MethodGet, "/x?version1=1", http.StatusBadRequest, "Missing parameter: version2."},
		{"unsupported method", http.MethodDelete, "/x", http.StatusMethodNotAllowed, "Request format is unrecognized."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleCompareVersions(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleSOAP(t *testing.T) {
	h := NewHandler()

	tests := []struct {
		name       string
		action     string
		body       string
		wantStatus int
		wantResult string
		wantFault  string
	}{
		{
			name:       "compare",
			action:     `"http://tempuri.org/CompareVersions"`,
			body:       soapRequest(`<CompareVersions xmlns="http://tempuri.org/"><version1>1.0</version1><version2>1.0.0</version2></CompareVersions>`),
			wantStatus: http.StatusOK,
			wantResult: "equal",
		},
		{
			name:       "no soap action header",
			body:       soapRequest(`<CompareVersions xmlns="http://tempuri.org/"><version1>1.10</version1><version2>1.9</version2></CompareVersions>`),
			wantStatus: http.StatusOK,
			wantResult: "after",
		},
		{
			name:       "malformed version",
			action:     CompareVersionsAction,
			body:       soapRequest(`<CompareVersions xmlns="http://tempuri.org/"><version1>1.x</version1><version2>1</version2></CompareVersions>`),
			wantStatus: http.StatusOK,
			wantResult: "error",
		},
		{
			name:       "empty element is an empty version",
			body:       soapRequest(`<CompareVersions xmlns="http://tempuri.org/"><version1/><version2>1</version2></CompareVersions>`),
			wantStatus: http.StatusOK,
			wantResult: "error",
		},
		{
			name:       "unknown action",
			action:     `"http://tempuri.org/Other"`,
			body:       soapRequest(``),
			wantStatus: http.StatusInternalServerError,
			wantFault:  "SOAPAction",
		},
		{
			name:       "not xml",
			body:       `{"version1":"1"}`,
			wantStatus: http.StatusInternalServerError,
			wantFault:  "Unable to read SOAP envelope",
		},
		{
			name:       "missing method element",
			body:       soapRequest(``),
			wantStatus: http.StatusInternalServerError,
			wantFault:  "CompareVersions",
		},
		{
			name:       "missing parameter",
			body:       soapRequest(`<CompareVersions xmlns="http://tempuri.org/"><version1>1</version1></CompareVersions>`),
			wantStatus: http.StatusInternalServerError,
			wantFault:  "Missing parameter: version2.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/VersionChecker.asmx", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/xml; charset=utf-8")
			if tt.action != "" {
				req.Header.Set("SOAPAction", tt.action)
			}
			w := httptest.NewRecorder()

			h.HandleSOAP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))

			var res soapResult
			require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &res), w.Body.String())

			if tt.wantFault != "" {
				require.NotNil(t, res.Body.Fault, w.Body.String())
				assert.Equal(t, "soap:Client", res.Body.Fault.Code)
				assert.Contains(t, res.Body.Fault.String, tt.wantFault)
				assert.Nil(t, res.Body.Response)
				return
			}

			require.NotNil(t, res.Body.Response, w.Body.String())
			assert.Equal(t, tt.wantResult, res.Body.Response.Result)
			assert.Nil(t, res.Body.Fault)
		})
	}
}

func TestHandleSOAPMethodNotAllowed(t *testing.T) {
	h := NewHandler()

	w := httptest.NewRecorder()
	h.HandleSOAP(w, httptest.NewRequest(http.MethodGet, "/VersionChecker.asmx", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func soap12Request(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>` + body + `</soap12:Body>
</soap12:Envelope>`
}

type soap12Result struct {
	XMLName xml.Name `xml:"http://www.w3.org/2003/05/soap-envelope Envelope"`
	Body    struct {
		Response *struct {
			Result string `xml:"CompareVersionsResult"`
		} `xml:"http://tempuri.org/ CompareVersionsResponse"`
		Fault *struct {
			Code   string `xml:"http://www.w3.org/2003/05/soap-envelope Code>Value"`
			Reason string `xml:"http://www.w3.org/2003/05/soap-envelope Reason>Text"`
		} `xml:"http://www.w3.org/2003/05/soap-envelope Fault"`
	} `xml:"http://www.w3.org/2003/05/soap-envelope Body"`
}

func TestHandleSOAP12(t *testing.T) {
	h := NewHandler()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantResult  string
		wantFault   string
	}{
		{
			name:        "compare",
			contentType: `application/soap+xml; charset=utf-8; action="http://tempuri.org/CompareVersions"`,
			body:        soap12Request(`<CompareVersions xmlns="http://tempuri.org/"><version1>1.2</version1><version2>1.2.1</version2></CompareVersions>`),
			wantResult:  "before",
		},
		{
			name:        "without action",
			contentType: "application/soap+xml; charset=utf-8",
			body:        soap12Request(`<CompareVersions xmlns="http://tempuri.org/"><version1>3</version1><version2>3.0</version2></CompareVersions>`),
			wantResult:  "equal",
		},
		{
			name:        "unknown action",
			contentType: `application/soap+xml; action="http://tempuri.org/Other"`,
			body:        soap12Request(``),
			wantFault:   "SOAPAction",
		},
		{
			name:        "missing parameter",
			contentType: "application/soap+xml",
			body:        soap12Request(`<CompareVersions xmlns="http://tempuri.org/"><version2>1</version2></CompareVersions>`),
			wantFault:   "Missing parameter: version1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/VersionChecker.asmx", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			h.HandleSOAP(w, req)

			assert.Equal(t, "application/soap+xml; charset=utf-8", w.Header().Get("Content-Type"))

			var res soap12Result
			require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &res), w.Body.String())

			if tt.wantFault != "" {
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.NotNil(t, res.Body.Fault, w.Body.String())
				assert.Equal(t, "soap:Sender", res.Body.Fault.Code)
				assert.Contains(t, res.Body.Fault.Reason, tt.wantFault)
				return
			}

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			require.NotNil(t, res.Body.Response, w.Body.String())
			assert.Equal(t, tt.wantResult, res.Body.Response.Result)
		})
	}
}

func TestHandleSOAPVersionMismatch(t *testing.T) {
	h := NewHandler()

	body := `<env:Envelope xmlns:env="urn:example:not-soap"><env:Body/></env:Envelope>`
	req := httptest.NewRequest(http.MethodPost, "/VersionChecker.asmx", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	w := httptest.NewRecorder()

	h.HandleSOAP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res soapResult
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	require.NotNil(t, res.Body.Fault)
	assert.Equal(t, "soap:VersionMismatch", res.Body.Fault.Code)
}

func TestHandleSOAPWSDL(t *testing.T) {
	h := NewHandler()

	for _, target := range []string{"/VersionChecker.asmx?WSDL", "/VersionChecker.asmx?wsdl"} {
		t.Run(target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://vercheck.example.com"+target, nil)
			w := httptest.NewRecorder()

			h.HandleSOAP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))

			var defs struct {
				XMLName         xml.Name `xml:"http://schemas.xmlsoap.org/wsdl/ definitions"`
				TargetNamespace string   `xml:"targetNamespace,attr"`
				Ports           []struct {
					Name    string `xml:"name,attr"`
					Address struct {
						Location string `xml:"location,attr"`
					} `xml:"address"`
				} `xml:"http://schemas.xmlsoap.org/wsdl/ service>port"`
			}
			require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &defs), w.Body.String())

			assert.Equal(t, ServiceNamespace, defs.TargetNamespace)
			require.Len(t, defs.Ports, 2)
			for _, p := range defs.Ports {
				assert.Equal(t, "http://vercheck.example.com/VersionChecker.asmx", p.Address.Location, p.Name)
			}
			assert.Contains(t, w.Body.String(), `soapAction="`+CompareVersionsAction+`"`)
		})
	}
}
