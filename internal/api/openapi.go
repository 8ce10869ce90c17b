package api

// Minimal OpenAPI document served at /swagger.json.
const openAPISpec = `{
  "openapi": "3.0.0",
  "info": {
    "title": "Warehouse Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/health": {
      "get": {
        "summary": "Health check",
        "responses": {
          "200": {
            "description": "Service is healthy",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/HealthResponse"
                }
              }
            }
          },
          "503": {
            "description": "Warehouse loads are inconsistent"
          }
        }
      }
    },
    "/api/warehouse": {
      "get": {
        "summary": "Warehouse capacity summary",
        "responses": {
          "200": {
            "description": "Summary",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/WarehouseSummary"
                }
              }
            }
          }
        }
      }
    },
    "/api/locations/{id}": {
      "get": {
        "summary": "Get storage location",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Location found",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/LocationResponse"
                }
              }
            }
          },
          "404": {
            "description": "Location not found"
          }
        }
      }
    },
    "/api/stock/{isbn}": {
      "get": {
        "summary": "Stock of a book per location",
        "parameters": [
          {
            "name": "isbn",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Stock info",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/BookStockInfo"
                }
              }
            }
          }
        }
      }
    },
    "/api/stock/{isbn}/availability": {
      "get": {
        "summary": "Check whether a quantity is in stock",
        "parameters": [
          {
            "name": "isbn",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "quantity",
            "in": "query",
            "required": true,
            "schema": {
              "type": "integer",
              "minimum": 1
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Availability",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/AvailabilityResponse"
                }
              }
            }
          },
          "400": {
            "description": "Invalid quantity"
          }
        }
      }
    },
    "/api/movements": {
      "get": {
        "summary": "Most recent movements",
        "parameters": [
          {
            "name": "limit",
            "in": "query",
            "required": false,
            "schema": {
              "type": "integer",
              "minimum": 1
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Movements",
            "content": {
              "application/json": {
                "schema": {
                  "type": "array",
                  "items": {
                    "$ref": "#/components/schemas/MovementResponse"
                  }
                }
              }
            }
          }
        }
      }
    },
    "/api/movements/receipts": {
      "post": {
        "summary": "Receive stock",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ReceiptRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Movement completed",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "202": {
            "description": "Movement prepared",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "400": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "409": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "422": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        },
        "parameters": [
          {
            "name": "prepare",
            "in": "query",
            "required": false,
            "schema": {
              "type": "boolean"
            },
            "description": "Only validate and store the movement as PENDING"
          }
        ]
      }
    },
    "/api/movements/writeoffs": {
      "post": {
        "summary": "Write off stock",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/WriteOffRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Movement completed",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "202": {
            "description": "Movement prepared",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "400": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "409": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "422": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        },
        "parameters": [
          {
            "name": "prepare",
            "in": "query",
            "required": false,
            "schema": {
              "type": "boolean"
            },
            "description": "Only validate and store the movement as PENDING"
          }
        ]
      }
    },
    "/api/movements/transfers": {
      "post": {
        "summary": "Transfer stock between locations",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/TransferRequest"
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Movement completed",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "202": {
            "description": "Movement prepared",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "400": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "409": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "422": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        },
        "parameters": [
          {
            "name": "prepare",
            "in": "query",
            "required": false,
            "schema": {
              "type": "boolean"
            },
            "description": "Only validate and store the movement as PENDING"
          }
        ]
      }
    },
    "/api/movements/{id}": {
      "get": {
        "summary": "Get movement by id",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Movement found",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        }
      }
    },
    "/api/movements/{id}/execute": {
      "post": {
        "summary": "Execute a prepared movement",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Movement finished",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "409": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "422": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        }
      }
    },
    "/api/movements/{id}/cancel": {
      "post": {
        "summary": "Cancel a prepared movement",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Movement finished",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/MovementResponse"
                }
              }
            }
          },
          "404": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "409": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          },
          "422": {
            "description": "Error",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/ErrorResponse"
                }
              }
            }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "HealthResponse": {
        "type": "object",
        "properties": {
          "status": {
            "type": "string"
          }
        }
      },
      "ErrorResponse": {
        "type": "object",
        "properties": {
          "error": {
            "type": "string"
          },
          "message": {
            "type": "string"
          },
          "movement": {
            "$ref": "#/components/schemas/MovementResponse"
          }
        }
      },
      "StockLine": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "locationId": {
            "type": "string"
          },
          "quantity": {
            "type": "integer"
          }
        }
      },
      "ReceiptLine": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "quantity": {
            "type": "integer"
          },
          "locationId": {
            "type": "string"
          }
        }
      },
      "TransferLine": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "quantity": {
            "type": "integer"
          }
        }
      },
      "ReceiptRequest": {
        "type": "object",
        "properties": {
          "actorId": {
            "type": "string"
          },
          "supplier": {
            "type": "string"
          },
          "preferredSection": {
            "type": "string",
            "enum": [
              "GENERAL",
              "CLIMATE_CONTROLLED",
              "BULK",
              "RECEIVING",
              "RETURNS"
            ]
          },
          "lines": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/ReceiptLine"
            }
          }
        }
      },
      "WriteOffRequest": {
        "type": "object",
        "properties": {
          "actorId": {
            "type": "string"
          },
          "reason": {
            "type": "string",
            "enum": [
              "DAMAGED",
              "LOST",
              "EXPIRED",
              "INVENTORY_CORRECTION",
              "OTHER"
            ]
          },
          "lines": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/StockLine"
            }
          }
        }
      },
      "TransferRequest": {
        "type": "object",
        "properties": {
          "actorId": {
            "type": "string"
          },
          "fromLocationId": {
            "type": "string"
          },
          "toLocationId": {
            "type": "string"
          },
          "lines": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/TransferLine"
            }
          }
        }
      },
      "MovementResponse": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string"
          },
          "type": {
            "type": "string"
          },
          "status": {
            "type": "string"
          },
          "actorId": {
            "type": "string"
          },
          "date": {
            "type": "string",
            "format": "date-time"
          },
          "finishedAt": {
            "type": "string",
            "format": "date-time",
            "nullable": true
          },
          "failure": {
            "type": "string"
          },
          "rollbackIncomplete": {
            "type": "boolean"
          },
          "supplier": {
            "type": "string"
          },
          "reason": {
            "type": "string"
          },
          "fromLocationId": {
            "type": "string"
          },
          "toLocationId": {
            "type": "string"
          },
          "lines": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/StockLine"
            }
          }
        }
      },
      "LocationStock": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "locationId": {
            "type": "string"
          },
          "quantity": {
            "type": "integer"
          },
          "dateAdded": {
            "type": "string",
            "format": "date-time"
          }
        }
      },
      "BookStockInfo": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "totalQuantity": {
            "type": "integer"
          },
          "locations": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/LocationStock"
            }
          }
        }
      },
      "AvailabilityResponse": {
        "type": "object",
        "properties": {
          "isbn": {
            "type": "string"
          },
          "quantity": {
            "type": "integer"
          },
          "available": {
            "type": "boolean"
          }
        }
      },
      "LocationResponse": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string"
          },
          "capacity": {
            "type": "integer"
          },
          "currentLoad": {
            "type": "integer"
          },
          "availableSpace": {
            "type": "integer"
          },
          "status": {
            "type": "string",
            "enum": [
              "FREE",
              "OCCUPIED",
              "BLOCKED"
            ]
          },
          "items": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/LocationStock"
            }
          }
        }
      },
      "SectionSummary": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string"
          },
          "type": {
            "type": "string"
          },
          "temperature": {
            "type": "number"
          },
          "humidity": {
            "type": "number"
          },
          "shelves": {
            "type": "integer"
          },
          "totalCapacity": {
            "type": "integer"
          },
          "currentLoad": {
            "type": "integer"
          },
          "availableSpace": {
            "type": "integer"
          }
        }
      },
      "WarehouseSummary": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string"
          },
          "address": {
            "type": "string"
          },
          "totalCapacity": {
            "type": "integer"
          },
          "currentLoad": {
            "type": "integer"
          },
          "availableSpace": {
            "type": "integer"
          },
          "items": {
            "type": "integer"
          },
          "sections": {
            "type": "array",
            "items": {
              "$ref": "#/components/schemas/SectionSummary"
            }
          }
        }
      }
    }
  }
}`
