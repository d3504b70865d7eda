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
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/NVIDIA/version-checker/pkg/serializer"
	"github.com/NVIDIA/version-checker/pkg/server"
)

const (
	// ServiceNamespace is the XML namespace of the web service.
	ServiceNamespace = "http://tempuri.org/"

	// SOAPEnvelopeNamespace is the SOAP 1.1 envelope namespace.
	SOAPEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	// SOAP12EnvelopeNamespace is the SOAP 1.2 envelope namespace.
	SOAP12EnvelopeNamespace = "http://www.w3.org/2003/05/soap-envelope"

	// CompareVersionsAction is the SOAPAction of the CompareVersions method.
	CompareVersionsAction = ServiceNamespace + "CompareVersions"

	xmlContentType    = "text/xml; charset=utf-8"
	soap12ContentType = "application/soap+xml; charset=utf-8"
	textContentType   = "text/plain; charset=utf-8"
)

// xmlString is the bare <string> document returned by the HTTP GET and POST
// bindings.
type xmlString struct {
	XMLName xml.Name `xml:"http://tempuri.org/ string"`
	Value   string   `xml:",chardata"`
}

// HandleCompareVersions serves the HTTP GET and HTTP POST (form encoded)
// bindings of the CompareVersions method.
func (h *Handler) HandleCompareVersions(w http.ResponseWriter, r *http.Request) {
	var params map[string][]string

	switch r.Method {
	case http.MethodGet:
		params = r.URL.Query()
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("Request format is invalid: %v.", err))
			return
		}
		params = r.PostForm
	default:
		w.Header().Set("Allow", "GET, POST")
		writeText(w, http.StatusMethodNotAllowed, "Request format is unrecognized.")
		return
	}

	values := make([]string, 0, 2)
	for _, name := range []string{"version1", "version2"} {
		v, ok := params[name]
		if !ok || len(v) == 0 {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("Missing parameter: %s.", name))
			return
		}
		values = append(values, v[0])
	}

	resp := compare(r, bindingASMX, values[0], values[1])
	serializer.RespondXML(w, http.StatusOK, xmlContentType, xmlString{Value: resp.Result.String()})
}

// soapVersion carries what differs between the SOAP 1.1 and 1.2 bindings.
type soapVersion struct {
	namespace   string
	contentType string
	senderCode  string
}

var (
	soap11 = soapVersion{
		namespace:   SOAPEnvelopeNamespace,
		contentType: xmlContentType,
		senderCode:  "soap:Client",
	}
	soap12 = soapVersion{
		namespace:   SOAP12EnvelopeNamespace,
		contentType: soap12ContentType,
		senderCode:  "soap:Sender",
	}
)

// soapVersionFromContentType picks the binding before the envelope has been
// read. SOAP 1.2 requests carry the action as a media type parameter.
func soapVersionFromContentType(r *http.Request) (soapVersion, string) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "application/soap+xml" {
		return soap12, params["action"]
	}
	return soap11, strings.Trim(r.Header.Get("SOAPAction"), `"`)
}

// soapEnvelope matches Envelope and Body in any namespace so the envelope
// namespace can select the SOAP version.
type soapEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    soapBody `xml:"Body"`
}

type soapBody struct {
	CompareVersions *soapCompareVersions `xml:"http://tempuri.org/ CompareVersions"`
}

type soapCompareVersions struct {
	Version1 *string `xml:"version1"`
	Version2 *string `xml:"version2"`
}

// The response side spells out the "soap" prefix because encoding/xml would
// otherwise redeclare the envelope namespace on every element. The prefix is
// bound to the 1.1 or 1.2 namespace per response.
type soapResponseEnvelope struct {
	XMLName xml.Name         `xml:"soap:Envelope"`
	XSI     string           `xml:"xmlns:xsi,attr"`
	XSD     string           `xml:"xmlns:xsd,attr"`
	SOAP    string           `xml:"xmlns:soap,attr"`
	Body    soapResponseBody `xml:"soap:Body"`
}

type soapResponseBody struct {
	Response *soapCompareVersionsResponse
	Fault    *soapFault
}

type soapCompareVersionsResponse struct {
	XMLName xml.Name `xml:"http://tempuri.org/ CompareVersionsResponse"`
	Result  string   `xml:"CompareVersionsResult"`
}

// soapFault renders either fault shape: faultcode/faultstring/detail for
// 1.1, Code/Reason for 1.2.
type soapFault struct {
	XMLName xml.Name      `xml:"soap:Fault"`
	Code    string        `xml:"faultcode,omitempty"`
	String  string        `xml:"faultstring,omitempty"`
	Detail  *struct{}     `xml:"detail"`
	Code12  *soap12Code   `xml:"soap:Code"`
	Reason  *soap12Reason `xml:"soap:Reason"`
}

type soap12Code struct {
	Value string `xml:"soap:Value"`
}

type soap12Reason struct {
	Text soap12Text `xml:"soap:Text"`
}

type soap12Text struct {
	Lang  string `xml:"xml:lang,attr"`
	Value string `xml:",chardata"`
}

func (v soapVersion) fault(code, msg string) *soapFault {
	if v == soap12 {
		return &soapFault{
			Code12: &soap12Code{Value: code},
			Reason: &soap12Reason{Text: soap12Text{Lang: "en", Value: msg}},
		}
	}
	return &soapFault{Code: code, String: msg, Detail: &struct{}{}}
}

func (v soapVersion) envelope(body soapResponseBody) soapResponseEnvelope {
	return soapResponseEnvelope{
		XSI:  "http://www.w3.org/2001/XMLSchema-instance",
		XSD:  "http://www.w3.org/2001/XMLSchema",
		SOAP: v.namespace,
		Body: body,
	}
}

// HandleSOAP serves the SOAP 1.1 and SOAP 1.2 bindings and, for GET ?WSDL,
// the service description. Malformed envelopes and unknown actions produce
// a sender fault (soap:Client or soap:Sender) with status 500.
func (h *Handler) HandleSOAP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && wantsWSDL(r) {
		writeWSDL(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeText(w, http.StatusMethodNotAllowed, "Request format is unrecognized.")
		return
	}
	defer r.Body.Close()

	v, action := soapVersionFromContentType(r)

	var env soapEnvelope
	if err := xml.NewDecoder(r.Body).Decode(&env); err != nil {
		writeSOAPFault(w, r, v, v.senderCode, fmt.Sprintf("Unable to read SOAP envelope: %v", err))
		return
	}

	switch env.XMLName.Space {
	case soap11.namespace:
		v = soap11
	case soap12.namespace:
		v = soap12
	default:
		writeSOAPFault(w, r, v, "soap:VersionMismatch",
			fmt.Sprintf("Possible SOAP version mismatch: Envelope namespace %s was unexpected.", env.XMLName.Space))
		return
	}

	if action != "" && action != CompareVersionsAction {
		writeSOAPFault(w, r, v, v.senderCode,
			fmt.Sprintf("Server did not recognize the value of HTTP Header SOAPAction: %s.", action))
		return
	}

	call := env.Body.CompareVersions
	if call == nil {
		writeSOAPFault(w, r, v, v.senderCode, "Envelope body does not contain a CompareVersions element.")
		return
	}
	if call.Version1 == nil {
		writeSOAPFault(w, r, v, v.senderCode, "Missing parameter: version1.")
		return
	}
	if call.Version2 == nil {
		writeSOAPFault(w, r, v, v.senderCode, "Missing parameter: version2.")
		return
	}

	resp := compare(r, bindingSOAP, *call.Version1, *call.Version2)
	serializer.RespondXML(w, http.StatusOK, v.contentType, v.envelope(soapResponseBody{
		Response: &soapCompareVersionsResponse{Result: resp.Result.String()},
	}))
}

func writeSOAPFault(w http.ResponseWriter, r *http.Request, v soapVersion, code, msg string) {
	slog.Debug("soap fault",
		"requestID", server.RequestIDFromContext(r.Context()),
		"soapNamespace", v.namespace,
		"code", code,
		"reason", msg,
	)
	serializer.RespondXML(w, http.StatusInternalServerError, v.contentType, v.envelope(soapResponseBody{
		Fault: v.fault(code, msg),
	}))
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", textContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprintln(w, msg)
}
