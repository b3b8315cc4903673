// Package pix builds and parses BR Code payloads (the EMV-MPM QR format used
// by the Brazilian instant-payment system).
package pix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMV-MPM field IDs used by static PIX charges.
const (
	idPayloadFormat    = "00"
	idMerchantAccount  = "26"
	idMerchantCategory = "52"
	idCurrency         = "53"
	idAmount           = "54"
	idCountry          = "58"
	idMerchantName     = "59"
	idMerchantCity     = "60"
	idAdditionalData   = "62"
	idCRC              = "63"
	idGUI              = "00"
	idChave            = "01"
	idInfoAdicional    = "02"
	idTxID             = "05"
	guiPix             = "br.gov.bcb.pix"
	moedaBRL           = "986"
)

// Cobranca is the input for one BR Code payload.
type Cobranca struct {
	Chave  string // PIX key (email, phone, CNPJ or EVP)
	Nome   string // merchant name, truncated to 25 chars
	Cidade string // merchant city, truncated to 15 chars
	CNPJ   string // merchant tax id, optional, carried in the account info
	Valor  decimal.Decimal
	TxID   string // defaults to "***" (static charge)
}

// Payload assembles the full BR Code string, CRC included.
func Payload(c Cobranca) (string, error) {
	if c.Chave == "" {
		return "", errors.New("chave PIX não configurada")
	}
	if c.Valor.IsNegative() {
		return "", errors.New("valor da cobrança não pode ser negativo")
	}
	txid := c.TxID
	if txid == "" {
		txid = "***"
	}

	conta := tlv(idGUI, guiPix) + tlv(idChave, c.Chave)
	if c.CNPJ != "" {
		conta += tlv(idInfoAdicional, c.CNPJ)
	}
	adicional := tlv(idTxID, txid)

	var b strings.Builder
	b.WriteString(tlv(idPayloadFormat, "01"))
	b.WriteString(tlv(idMerchantAccount, conta))
	b.WriteString(tlv(idMerchantCategory, "0000"))
	b.WriteString(tlv(idCurrency, moedaBRL))
	if c.Valor.IsPositive() {
		b.WriteString(tlv(idAmount, c.Valor.StringFixed(2)))
	}
	b.WriteString(tlv(idCountry, "BR"))
	b.WriteString(tlv(idMerchantName, truncar(c.Nome, 25)))
	b.WriteString(tlv(idMerchantCity, truncar(c.Cidade, 15)))
	b.WriteString(tlv(idAdditionalData, adicional))

	// CRC covers everything up to and including its own "6304" header
	semCRC := b.String() + idCRC + "04"
	return semCRC + fmt.Sprintf("%04X", crc16(semCRC)), nil
}

// Campos decodes the top-level TLV fields of a payload and verifies its CRC.
func Campos(payload string) (map[string]string, error) {
	if len(payload) < 8 {
		return nil, errors.New("payload curto demais")
	}
	corpo, crcStr := payload[:len(payload)-4], payload[len(payload)-4:]
	if fmt.Sprintf("%04X", crc16(corpo)) != strings.ToUpper(crcStr) {
		return nil, errors.New("CRC inválido")
	}

	campos := make(map[string]string)
	for i := 0; i+4 <= len(corpo); {
		id := corpo[i : i+2]
		// the CRC value sits past corpo; it was already verified above
		if id == idCRC {
			campos[idCRC] = crcStr
			break
		}
		var n int
		if _, err := fmt.Sscanf(corpo[i+2:i+4], "%02d", &n); err != nil {
			return nil, fmt.Errorf("tamanho inválido no campo %s", id)
		}
		if i+4+n > len(corpo) {
			return nil, fmt.Errorf("campo %s truncado", id)
		}
		campos[id] = corpo[i+4 : i+4+n]
		i += 4 + n
	}
	return campos, nil
}

// Valor extracts the amount field (54) of a payload.
func Valor(payload string) (decimal.Decimal, error) {
	campos, err := Campos(payload)
	if err != nil {
		return decimal.Zero, err
	}
	bruto, ok := campos[idAmount]
	if !ok {
		return decimal.Zero, errors.New("payload sem valor")
	}
	return decimal.NewFromString(bruto)
}

func tlv(id, valor string) string {
	return fmt.Sprintf("%s%02d%s", id, len(valor), valor)
}

func truncar(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// crc16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), as required by the
// EMV-MPM spec for field 63.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
