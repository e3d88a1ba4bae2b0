// File: internal/services/phonelocale/areacodes.go
package phonelocale

// argentinaAreaCodes maps national-number prefixes to a regional label.
// Argentine area codes are 2, 3 or 4 digits; entries sharing a prefix always
// differ in length, so longest-match lookup can never tie.
var argentinaAreaCodes = map[string]string{
    "11": "Buenos Aires (CABA y GBA)",

    "220": "Merlo",
    "221": "La Plata",
    "223": "Mar del Plata",
    "230": "Pilar",
    "236": "Junín",
    "260": "San Rafael",
    "261": "Mendoza",
    "264": "San Juan",
    "266": "San Luis",
    "280": "Trelew y Puerto Madryn",
    "291": "Bahía Blanca",
    "294": "Bariloche",
    "299": "Neuquén",
    "341": "Rosario",
    "342": "Santa Fe",
    "343": "Paraná",
    "345": "Concordia",
    "351": "Córdoba",
    "358": "Río Cuarto",
    "362": "Resistencia",
    "370": "Formosa",
    "376": "Posadas",
    "379": "Corrientes",
    "381": "San Miguel de Tucumán",
    "383": "Catamarca",
    "385": "Santiago del Estero",
    "387": "Salta",
    "388": "San Salvador de Jujuy",

    "2652": "Villa Mercedes",
    "2901": "Ushuaia",
    "2920": "Viedma",
    "2954": "Santa Rosa",
    "2966": "Río Gallegos",
    "3541": "Villa Carlos Paz",
}

// minAreaCodeLen and maxAreaCodeLen bound the prefix search.
const (
    minAreaCodeLen = 2
    maxAreaCodeLen = 4
)
