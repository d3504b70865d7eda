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
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

// wsdlTemplate describes the CompareVersions operation over SOAP 1.1 and
// SOAP 1.2. Both address elements take the XML-escaped endpoint URL.
const wsdlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/" xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/" xmlns:s="http://www.w3.org/2001/XMLSchema" xmlns:tns="http://tempuri.org/" xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/" targetNamespace="http://tempuri.org/">
  <wsdl:types>
    <s:schema elementFormDefault="qualified" targetNamespace="http://tempuri.org/">
      <s:element name="CompareVersions">
        <s:complexType>
          <s:sequence>
            <s:element minOccurs="0" maxOccurs="1" name="version1" type="s:string" />
            <s:element minOccurs="0" maxOccurs="1" name="version2" type="s:string" />
          </s:sequence>
        </s:complexType>
      </s:element>
      <s:element name="CompareVersionsResponse">
        <s:complexType>
          <s:sequence>
            <s:element minOccurs="0" maxOccurs="1" name="CompareVersionsResult" type="s:string" />
          </s:sequence>
        </s:complexType>
      </s:element>
    </s:schema>
  </wsdl:types>
  <wsdl:message name="CompareVersionsSoapIn">
    <wsdl:part name="parameters" element="tns:CompareVersions" />
  </wsdl:message>
  <wsdl:message name="CompareVersionsSoapOut">
    <wsdl:part name="parameters" element="tns:CompareVersionsResponse" />
  </wsdl:message>
  <wsdl:portType name="VersionCheckerSoap">
    <wsdl:operation name="CompareVersions">
      <wsdl:input message="tns:CompareVersionsSoapIn" />
      <wsdl:output message="tns:CompareVersionsSoapOut" />
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="VersionCheckerSoap" type="tns:VersionCheckerSoap">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http" />
    <wsdl:operation name="CompareVersions">
      <soap:operation soapAction="http://tempuri.org/CompareVersions" style="document" />
      <wsdl:input><soap:body use="literal" /></wsdl:input>
      <wsdl:output><soap:body use="literal" /></wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:binding name="VersionCheckerSoap12" type="tns:VersionCheckerSoap">
    <soap12:binding transport="http://schemas.xmlsoap.org/soap/http" />
    <wsdl:operation name="CompareVersions">
      <soap12:operation soapAction="http://tempuri.org/CompareVersions" style="document" />
      <wsdl:input><soap12:body use="literal" /></wsdl:input>
      <wsdl:output><soap12:body use="literal" /></wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="VersionChecker">
    <wsdl:port name="VersionCheckerSoap" binding="tns:VersionCheckerSoap">
      <soap:address location="%[1]s" />
    </wsdl:port>
    <wsdl:port name="VersionCheckerSoap12" binding="tns:VersionCheckerSoap12">
      <soap12:address location="%[1]s" />
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>
`

// wantsWSDL reports whether the query asks for the service description.
// The key is matched case-insensitively, so ?wsdl and ?WSDL both work.
func wantsWSDL(r *http.Request) bool {
	for key := range r.URL.Query() {
		if strings.EqualFold(key, "wsdl") {
			return true
		}
	}
	return false
}

// endpointURL is the address clients should post envelopes to, as seen by
// this request.
func endpointURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.Path)
}

func writeWSDL(w http.ResponseWriter, r *http.Request) {
	var location bytes.Buffer
	if err := xml.EscapeText(&location, []byte(endpointURL(r))); err != nil {
		writeText(w, http.StatusInternalServerError, "Unable to build service description.")
		return
	}

	w.Header().Set("Content-Type", xmlContentType)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, wsdlTemplate, location.String())
}
